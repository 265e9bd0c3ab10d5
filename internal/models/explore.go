package models

import (
	"github.com/TrainNomad/raptor-backend/internal/engine"
)

// ExploreModel is the fastest journey found to one reachable stop.
type ExploreModel struct {
	StopID   string       `json:"stopId"`
	StopName string       `json:"stopName"`
	Lat      float64      `json:"lat"`
	Lon      float64      `json:"lon"`
	Journey  JourneyModel `json:"journey"`
}

// NewExploreModels converts reachability results.
func NewExploreModels(results []engine.ExploreResult, s *engine.Snapshot) []ExploreModel {
	out := make([]ExploreModel, 0, len(results))
	for _, r := range results {
		lat, lon := s.StopCoords(r.StopID)
		out = append(out, ExploreModel{
			StopID:   r.StopID,
			StopName: s.StopName(r.StopID),
			Lat:      lat,
			Lon:      lon,
			Journey:  NewJourneyModel(r.Journey, s),
		})
	}
	return out
}
