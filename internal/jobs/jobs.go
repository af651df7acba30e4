// Package jobs defines the periodic maintenance jobs the worker runs.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
)

// Job type constants
const (
	JobTypeCatalogRefresh = "catalog:refresh"
	JobTypePurgeState     = "state:purge"
)

// Job is a unit of work run on a fixed interval.
type Job struct {
	Type     string
	Interval time.Duration
	// Timeout bounds a single run. Zero means the run is bounded only by
	// the worker's context.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Reloader reloads the catalog document.
type Reloader interface {
	Reload(ctx context.Context) error
}

// CatalogRefresh reloads the catalog every interval. A failed reload keeps
// the previous catalog, so the error is only reported.
func CatalogRefresh(r Reloader, interval time.Duration) Job {
	return Job{
		Type:     JobTypeCatalogRefresh,
		Interval: interval,
		Timeout:  time.Minute,
		Run:      r.Reload,
	}
}

// PurgeState removes expired keys from a store that does not expire them
// itself.
func PurgeState(p state.Purger, interval time.Duration, now func() time.Time) Job {
	if now == nil {
		now = time.Now
	}
	return Job{
		Type:     JobTypePurgeState,
		Interval: interval,
		Timeout:  time.Minute,
		Run: func(ctx context.Context) error {
			n, err := p.Purge(ctx, now())
			if err != nil {
				return fmt.Errorf("failed to purge expired state: %w", err)
			}
			if telemetry.Business != nil && n > 0 {
				telemetry.Business.StatePurged.Add(float64(n))
			}
			return nil
		},
	}
}
