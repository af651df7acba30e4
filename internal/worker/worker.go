package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/jobs"
)

// Config holds worker configuration
type Config struct {
	// WorkerID identifies this worker instance in logs
	WorkerID string

	// MaxConcurrency is the maximum number of jobs running at once
	MaxConcurrency int

	// ShutdownTimeout bounds how long Start waits for in-flight jobs after
	// the context is cancelled
	ShutdownTimeout time.Duration
}

// Worker runs periodic jobs
type Worker struct {
	config Config
	jobs   []jobs.Job
	logger *slog.Logger
}

// NewWorker creates a new worker. Jobs with a non-positive interval are
// ignored.
func NewWorker(config Config, logger *slog.Logger, js ...jobs.Job) *Worker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 2
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Worker{config: config, logger: logger}
	for _, j := range js {
		if j.Interval <= 0 || j.Run == nil {
			logger.Info("job disabled", "job_type", j.Type)
			continue
		}
		w.jobs = append(w.jobs, j)
	}
	return w
}

// Jobs returns the job types the worker schedules.
func (w *Worker) Jobs() []string {
	out := make([]string, len(w.jobs))
	for i, j := range w.jobs {
		out[i] = j.Type
	}
	return out
}

// Start runs jobs until the context is cancelled, then waits for in-flight
// jobs to finish. It always returns the context's error.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"worker_id", w.config.WorkerID,
		"jobs", w.Jobs(),
		"max_concurrency", w.config.MaxConcurrency,
	)

	sem := make(chan struct{}, w.config.MaxConcurrency)
	var inflight sync.WaitGroup
	var loops sync.WaitGroup

	for _, j := range w.jobs {
		loops.Add(1)
		go func() {
			defer loops.Done()
			w.schedule(ctx, j, sem, &inflight)
		}()
	}

	<-ctx.Done()
	w.logger.Info("worker shutting down", "worker_id", w.config.WorkerID)
	loops.Wait()

	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(w.config.ShutdownTimeout):
		w.logger.Warn("worker shutdown timed out with jobs still running", "worker_id", w.config.WorkerID)
	}
	return ctx.Err()
}

// schedule ticks a single job. A tick is skipped while the previous run of
// the same job is still going or the worker is at max concurrency.
func (w *Worker) schedule(ctx context.Context, j jobs.Job, sem chan struct{}, inflight *sync.WaitGroup) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	running := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case running <- struct{}{}:
			default:
				w.logger.Debug("job still running, skipping tick", "job_type", j.Type)
				continue
			}
			select {
			case sem <- struct{}{}:
			default:
				<-running
				continue
			}
			inflight.Add(1)
			go func() {
				defer inflight.Done()
				defer func() { <-sem; <-running }()
				w.process(ctx, j)
			}()
		}
	}
}

// process runs a single job. Errors are logged; the job runs again on the
// next tick.
func (w *Worker) process(ctx context.Context, j jobs.Job) {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("job panicked", "job_type", j.Type, "panic", r)
		}
	}()

	if err := j.Run(ctx); err != nil {
		w.logger.Error("job failed",
			"worker_id", w.config.WorkerID,
			"job_type", j.Type,
			"duration", time.Since(start),
			"error", err,
		)
		return
	}
	w.logger.Debug("job completed",
		"worker_id", w.config.WorkerID,
		"job_type", j.Type,
		"duration", time.Since(start),
	)
}
