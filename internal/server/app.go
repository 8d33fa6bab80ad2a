// Package server wires the seekauth server together: it opens the credential
// store, serves the check endpoint and, when configured, a Prometheus
// listener, and shuts everything down on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/seekauth/internal/cryptox"
	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/dmitrijs2005/seekauth/internal/server/auth"
	"github.com/dmitrijs2005/seekauth/internal/server/config"
	"github.com/dmitrijs2005/seekauth/internal/server/httpapi"
	"github.com/dmitrijs2005/seekauth/internal/server/metrics"
	"github.com/dmitrijs2005/seekauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/seekauth/internal/server/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	store    *store.Store
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// NewApp validates c, opens and migrates the database and builds the store.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	repomanager.SetLogger(logger)
	s, db, err := OpenStore(ctx, c)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, c.DatabaseDriver),
	)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		store:    s,
		registry: registry,
		metrics:  metrics.NewMetrics(registry),
	}, nil
}

// OpenStore opens the configured database and returns a store over it. The
// caller owns the returned *sql.DB.
func OpenStore(ctx context.Context, c *config.Config) (*store.Store, *sql.DB, error) {
	hasher, err := cryptox.NewPasswordHasher(c.HashAlgorithm, c.BcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hasher init error: %w", err)
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	return store.New(db, m, hasher), db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) checkServer() *httpapi.Server {
	eval := auth.NewEvaluator(app.store, app.logger, app.metrics)
	check := httpapi.NewCheckHandler(eval, app.config.HeaderName, app.logger.With("module", "check"), app.metrics)
	router := httpapi.NewRouter(app.config.CheckPath, check, app.logger.With("module", "http"), app.metrics)
	return httpapi.NewServer("check_server", app.config.ListenAddr, router, app.logger,
		app.config.ReadHeaderTimeout, app.config.ShutdownTimeout)
}

func (app *App) metricsServer() *httpapi.Server {
	return httpapi.NewServer("metrics_server", app.config.MetricsAddr, metrics.Handler(app.registry), app.logger,
		app.config.ReadHeaderTimeout, app.config.ShutdownTimeout)
}

func (app *App) startServer(ctx context.Context, cancelFunc context.CancelFunc, s *httpapi.Server) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a listener fails,
// then closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startServer(ctx, cancelFunc, app.checkServer())
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startServer(ctx, cancelFunc, app.metricsServer())
		}()
	}

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}

func (app *App) Close() error {
	return app.db.Close()
}
