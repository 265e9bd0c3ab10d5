// Package app holds the Application struct, which carries the shared
// dependencies every request handler needs.
package app

import (
	"log/slog"

	"github.com/TrainNomad/raptor-backend/internal/appconf"
	"github.com/TrainNomad/raptor-backend/internal/clock"
	"github.com/TrainNomad/raptor-backend/internal/engine"
	"github.com/TrainNomad/raptor-backend/internal/searchdb"
	"github.com/TrainNomad/raptor-backend/internal/tarifs"
)

// Application is the dependency container built once at startup and shared
// by all handlers. Everything it holds is safe for concurrent use.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Snapshot *engine.Snapshot
	SearchDB *searchdb.Client
	Tarifs   *tarifs.Index
	Clock    clock.Clock
}
