package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/auth"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/bootstrap"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/cookie"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/email"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/handler"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/handler/storefront"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/jobs"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/middleware"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/router"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/routes"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/storage"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/worker"
)

// app holds everything the HTTP server and the worker share.
type app struct {
	catalog  service.CatalogService
	handler  http.Handler
	limiters []*middleware.RateLimiter
}

func (a *app) stop() {
	for _, l := range a.limiters {
		l.Stop()
	}
}

// newApp wires services, middleware and routes on top of the given storage
// backends.
func newApp(cfg *internal.Config, logger *slog.Logger, docs storage.Storage, store state.Store, mailer service.Mailer, metrics *middleware.Metrics) *app {
	lang, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Warn("Invalid LOCALE, using Vietnamese collation", "locale", cfg.Locale, "error", err)
		lang = language.Vietnamese
	}

	keys := state.Keys{Prefix: cfg.State.KeyPrefix}
	ttl := cfg.State.SessionTTL

	// Initialize services
	recentService := service.NewRecentlyViewedService(store, keys, ttl)
	catalogService := service.NewCatalogService(docs, recentService, service.CatalogOptions{
		Key:              cfg.Catalog.Key,
		Language:         lang,
		PlaceholderImage: cfg.Catalog.PlaceholderImage,
	}, logger)
	cartService := service.NewCartService(store, keys, ttl, catalogService.Snapshot, logger)
	accountService := service.NewAccountService(store, keys, ttl, auth.NewHasher(cfg.Auth.BcryptCost), mailer, cfg.BaseURL, logger)
	checkoutService := service.NewCheckoutService(store, keys, cartService, mailer, logger)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0
	}

	csrfConfig := middleware.DefaultCSRFConfig()
	csrfConfig.AllowedOrigins = append([]string{cfg.BaseURL}, cfg.AllowedOrigins...)

	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	strictRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())

	sessions := middleware.Session(middleware.SessionConfig{
		Cookie:  cookie.NewConfig(cfg.Cookie.BaseDomain, cfg.Cookie.Secure),
		TTL:     ttl,
		NewID:   service.GenerateSessionID,
		ValidID: service.ValidSessionID,
	})

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		middleware.WithRequestLogger(logger),
		telemetry.SentryMiddleware(),
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		router.CORS(cfg.AllowedOrigins),
		middleware.MaxBodySize(middleware.SmallMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		router.Logger(logger),
		sessions,
		middleware.WithUser(accountService),
		telemetry.SentryContextMiddleware(sentryUser),
		middleware.CSRF(csrfConfig),
	)

	routes.RegisterOpsRoutes(r, routes.OpsDeps{
		Health: func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
		Metrics: metrics.Handler(),
	})
	routes.RegisterStorefrontRoutes(r, routes.StorefrontDeps{
		CatalogHandler:  storefront.NewCatalogHandler(catalogService),
		CartHandler:     storefront.NewCartHandler(cartService),
		AccountHandler:  storefront.NewAccountHandler(accountService),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService),
		RequireUser:     middleware.RequireUser,
		Sensitive:       strictRateLimiter.Middleware,
	})
	r.NotFound(handler.NotFoundResponse)

	logger.Debug("routes registered", "routes", r.Routes())

	return &app{
		catalog:  catalogService,
		handler:  r,
		limiters: []*middleware.RateLimiter{defaultRateLimiter, strictRateLimiter},
	}
}

func sentryUser(ctx context.Context) *telemetry.UserInfo {
	user := middleware.GetUserFromContext(ctx)
	if user == nil {
		return nil
	}
	return &telemetry.UserInfo{ID: user.ID.String(), Email: user.Email}
}

func newMailer(cfg internal.EmailConfig, logger *slog.Logger) (service.Mailer, error) {
	var sender email.Sender
	if cfg.Enabled {
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Host,
			Port:     int(cfg.Port),
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			FromName: cfg.FromName,
		}, logger)
	} else {
		sender = email.NewLogSender(logger)
	}
	return email.NewService(sender, cfg.From, cfg.FromName)
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize error tracking
	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// Initialize Prometheus metrics
	telemetry.InitBusinessMetrics("nerdtech")
	metrics := middleware.NewMetrics("nerdtech")

	// Catalog document storage
	docs, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}
	if err := bootstrap.EnsureCatalog(ctx, docs, &bootstrap.CatalogSeed{
		Key:  cfg.Catalog.Key,
		Path: cfg.Catalog.SeedPath,
	}, logger); err != nil {
		return fmt.Errorf("catalog bootstrap failed: %w", err)
	}

	// Visitor state
	store, err := state.NewStore(ctx, cfg.State, logger)
	if err != nil {
		return fmt.Errorf("state store initialization failed: %w", err)
	}
	defer store.Close()
	logger.Info("State store ready", "driver", cfg.State.Driver)

	mailer, err := newMailer(cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("email initialization failed: %w", err)
	}

	a := newApp(cfg, logger, docs, store, mailer, metrics)
	defer a.stop()

	// The server starts even when the catalog is unavailable; pages render
	// empty until a refresh succeeds.
	if err := a.catalog.Reload(ctx); err != nil {
		logger.Warn("Initial catalog load failed, serving an empty catalog", "error", err)
	}

	// ==========================================================================
	// Background jobs
	// ==========================================================================

	jobList := []jobs.Job{jobs.CatalogRefresh(a.catalog, cfg.Catalog.RefreshInterval)}
	if purger, ok := state.AsPurger(store); ok {
		jobList = append(jobList, jobs.PurgeState(purger, cfg.State.PurgeInterval, time.Now))
	}
	w := worker.NewWorker(worker.Config{WorkerID: "nerdtech"}, logger, jobList...)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		w.Start(ctx)
	}()

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	<-workerDone
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
