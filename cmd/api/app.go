package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TrainNomad/raptor-backend/internal/app"
	"github.com/TrainNomad/raptor-backend/internal/appconf"
	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/clock"
	"github.com/TrainNomad/raptor-backend/internal/engine"
	"github.com/TrainNomad/raptor-backend/internal/logging"
	"github.com/TrainNomad/raptor-backend/internal/restapi"
	"github.com/TrainNomad/raptor-backend/internal/searchdb"
	"github.com/TrainNomad/raptor-backend/internal/tarifs"
)

// BuildApplication creates and initializes the Application with all
// dependencies: logger, schedule snapshot, autocomplete database and tariff
// index. A missing schedule artifact is fatal; the autocomplete database and
// tariff index are optional.
func BuildApplication(cfg appconf.Config) (*app.Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	bundle, err := artifact.Load(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule artifacts: %w", err)
	}
	snapshot := engine.NewSnapshot(bundle)
	logger.Info("loaded schedule",
		"stops", bundle.Meta.StopCount,
		"routes", bundle.Meta.RouteCount,
		"trips", bundle.Meta.TripCount,
		"stations", bundle.Meta.StationCount,
	)

	var search *searchdb.Client
	if cfg.SearchDBPath != "" {
		search, err = searchdb.Open(cfg.SearchDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open search database: %w", err)
		}
	}

	index, err := tarifs.Load(cfg.TarifsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tariff index: %w", err)
	}

	coreApp := &app.Application{
		Config:   cfg,
		Logger:   logger,
		Snapshot: snapshot,
		SearchDB: search,
		Tarifs:   index,
		Clock:    clock.SystemClock{},
	}

	return coreApp, nil
}

// CreateServer creates and configures the HTTP server with routes and middleware.
// Applies security headers and request id, metrics and request logging middleware.
func CreateServer(coreApp *app.Application, cfg appconf.Config) *http.Server {
	api := restapi.NewRestAPI(coreApp)

	mux := http.NewServeMux()
	api.SetRoutes(mux)

	// Wrap with security middleware
	secureHandler := api.WithSecurityHeaders(restapi.MetricsMiddleware(mux))

	// Request id, then request logging (outermost)
	requestLogger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	requestLogMiddleware := restapi.NewRequestLoggingMiddleware(requestLogger)
	handler := requestLogMiddleware(restapi.RequestIDMiddleware(secureHandler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return srv
}

// Run manages the server lifecycle with graceful shutdown.
// Starts the server in a goroutine, waits for shutdown signals (SIGINT, SIGTERM),
// and performs graceful shutdown with a 30-second timeout.
// Returns an error if the server fails to start or shutdown fails.
func Run(srv *http.Server, coreApp *app.Application) error {
	logger := coreApp.Logger
	logger.Info("starting server", "addr", srv.Addr, "env", coreApp.Config.Env.String())

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to capture server errors
	serverErrors := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Wait for either shutdown signal or server error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Close the autocomplete database
	if coreApp.SearchDB != nil {
		logging.SafeClose(coreApp.SearchDB, logger, "search database")
	}

	logger.Info("server exited")
	return nil
}
