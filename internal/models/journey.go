package models

import (
	"github.com/twpayne/go-polyline"

	"github.com/TrainNomad/raptor-backend/internal/engine"
)

// LegModel is one ridden leg of a journey as returned by the API. Times are
// seconds from midnight of the service day and can exceed 86400 for rides
// past midnight.
type LegModel struct {
	FromID    string `json:"fromId"`
	FromName  string `json:"fromName"`
	ToID      string `json:"toId"`
	ToName    string `json:"toName"`
	DepTime   int    `json:"depTime"`
	ArrTime   int    `json:"arrTime"`
	Duration  int    `json:"duration"`
	TripID    string `json:"tripId"`
	RouteID   string `json:"routeId"`
	RouteName string `json:"routeName"`
	Operator  string `json:"operator"`
	TrainType string `json:"trainType"`
	Polyline  string `json:"polyline,omitempty"`
}

// JourneyModel is one itinerary option.
type JourneyModel struct {
	DepTime    int        `json:"depTime"`
	ArrTime    int        `json:"arrTime"`
	Duration   int        `json:"duration"`
	Transfers  int        `json:"transfers"`
	TrainTypes []string   `json:"trainTypes"`
	Legs       []LegModel `json:"legs"`
}

// NewJourneyModel converts an engine journey, resolving display names and
// attaching an encoded polyline per leg.
func NewJourneyModel(j engine.Journey, s *engine.Snapshot) JourneyModel {
	legs := make([]LegModel, 0, len(j.Legs))
	for _, leg := range j.Legs {
		legs = append(legs, NewLegModel(leg, s))
	}
	return JourneyModel{
		DepTime:    j.DepTime,
		ArrTime:    j.ArrTime,
		Duration:   j.Duration,
		Transfers:  j.Transfers,
		TrainTypes: j.TrainTypes,
		Legs:       legs,
	}
}

// NewJourneyModels converts a journey list.
func NewJourneyModels(journeys []engine.Journey, s *engine.Snapshot) []JourneyModel {
	out := make([]JourneyModel, 0, len(journeys))
	for _, j := range journeys {
		out = append(out, NewJourneyModel(j, s))
	}
	return out
}

// NewLegModel converts one engine leg.
func NewLegModel(leg engine.Leg, s *engine.Snapshot) LegModel {
	return LegModel{
		FromID:    leg.FromID,
		FromName:  s.StopName(leg.FromID),
		ToID:      leg.ToID,
		ToName:    s.StopName(leg.ToID),
		DepTime:   leg.DepTime,
		ArrTime:   leg.ArrTime,
		Duration:  leg.Duration,
		TripID:    leg.TripID,
		RouteID:   leg.RouteID,
		RouteName: leg.RouteName,
		Operator:  leg.Operator,
		TrainType: leg.TrainType,
		Polyline:  legPolyline(leg, s),
	}
}

// legPolyline encodes the leg's stop chain as a Google polyline.
func legPolyline(leg engine.Leg, s *engine.Snapshot) string {
	stops := s.LegStops(leg)
	coords := make([][]float64, 0, len(stops))
	for _, id := range stops {
		lat, lon := s.StopCoords(id)
		if lat == 0 && lon == 0 {
			continue
		}
		coords = append(coords, []float64{lat, lon})
	}
	if len(coords) < 2 {
		return ""
	}
	return string(polyline.EncodeCoords(coords))
}
