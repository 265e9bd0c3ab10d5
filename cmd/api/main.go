package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/TrainNomad/raptor-backend/internal/appconf"
)

func main() {
	var cfg appconf.Config
	var envFlag string

	// Parse command-line flags
	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client for rate limiting")
	flag.StringVar(&cfg.DataPath, "data-path", "./data", "Directory holding the built schedule artifacts")
	flag.StringVar(&cfg.SearchDBPath, "search-db", "", "Path to the SQLite autocomplete database (optional)")
	flag.StringVar(&cfg.TarifsPath, "tarifs", "", "Path to the tariff index CSV (optional)")
	flag.Parse()

	cfg.Verbose = true
	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	// Build application with dependencies
	coreApp, err := BuildApplication(cfg)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	srv := CreateServer(coreApp, cfg)

	// Run server with graceful shutdown
	if err := Run(srv, coreApp); err != nil {
		coreApp.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
