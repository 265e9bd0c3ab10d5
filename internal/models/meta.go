package models

import (
	"time"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
)

// MetaModel describes the loaded timetable build.
type MetaModel struct {
	BuiltAt          time.Time      `json:"builtAt"`
	SchemaVersion    int            `json:"schemaVersion"`
	Operators        []string       `json:"operators"`
	StopCount        int            `json:"stopCount"`
	RouteCount       int            `json:"routeCount"`
	TripCount        int            `json:"tripCount"`
	StationCount     int            `json:"stationCount"`
	TripsPerOperator map[string]int `json:"tripsPerOperator,omitempty"`
}

// NewMetaModel converts build metadata.
func NewMetaModel(m artifact.Meta) MetaModel {
	return MetaModel{
		BuiltAt:          m.BuiltAt,
		SchemaVersion:    m.SchemaVersion,
		Operators:        m.Operators,
		StopCount:        m.StopCount,
		RouteCount:       m.RouteCount,
		TripCount:        m.TripCount,
		StationCount:     m.StationCount,
		TripsPerOperator: m.TripsPerOp,
	}
}
