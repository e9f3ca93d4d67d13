package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"findash/internal/config"
	apierrors "findash/internal/errors"
	"findash/internal/infrastructure"
	custommiddleware "findash/internal/middleware"
	"findash/internal/services"
	handlers "findash/internal/transport/http"
	"findash/internal/validation"
	"findash/pkg/contracts"
)

// Application wires configuration, the data service and the HTTP
// surface together.
type Application struct {
	Config      *config.Config
	Router      *chi.Mux
	Server      *http.Server
	DataService *services.DataService
	Refresher   *services.Refresher
	Logger      *slog.Logger
}

// NewApplication creates a fully wired application instance.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	logger.Info("application starting",
		slog.String("version", contracts.Version),
		slog.String("workbook", cfg.Data.WorkbookPath))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := services.NewMetrics(registry)

	validator := validation.NewWorkbookValidator(logger)
	if err := validator.ValidateWorkbookFile(cfg.Data.WorkbookPath); err != nil {
		logger.Warn("workbook validation failed; loads will error until the file appears",
			"error", err)
	}

	dataService := services.NewDataService(cfg.Data, logger, metrics)

	var refresher *services.Refresher
	if cfg.Refresh.Enabled {
		refresher, err = services.NewRefresher(dataService, cfg.Refresh.Schedule, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create refresher: %w", err)
		}
	}

	app := &Application{
		Config:      cfg,
		DataService: dataService,
		Refresher:   refresher,
		Logger:      logger,
	}
	app.Router = app.buildRouter(registry)
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// buildRouter assembles the middleware chain and mounts the handlers.
func (a *Application) buildRouter(registry *prometheus.Registry) *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))
	if a.Config.Security.RateLimit.Enabled {
		limiter := custommiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(contracts.Version)

	r.Mount("/api", dataHandler.Routes())
	r.Get("/healthz", healthHandler.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// Run starts the server and blocks until shutdown. The initial
// snapshot load happens here so a broken workbook path shows up in
// the logs at startup instead of on the first request; the server
// still starts, since the workbook may simply not exist yet.
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loadCtx, loadCancel := context.WithTimeout(ctx, time.Minute)
	if _, err := a.DataService.LoadSnapshot(loadCtx); err != nil {
		a.Logger.Warn("initial snapshot load failed", "error", err)
	}
	loadCancel()

	if a.Refresher != nil {
		a.Refresher.Start()
		defer a.Refresher.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
