package engine

import (
	"sort"
	"strings"
)

// Leg is one boarded trip within a journey.
type Leg struct {
	FromID    string
	ToID      string
	DepTime   int
	ArrTime   int
	Duration  int
	TripID    string
	RouteID   string
	RouteName string
	Operator  string
	TrainType string
}

// Journey is an origin-to-destination itinerary: one leg per boarded trip,
// transfer edges collapsed.
type Journey struct {
	DepTime    int
	ArrTime    int
	Duration   int
	Transfers  int
	Legs       []Leg
	TrainTypes []string
}

// key identifies a journey by its boarded trip sequence, for deduplication
// across enumeration passes.
func (j Journey) key() string {
	ids := make([]string, len(j.Legs))
	for i, leg := range j.Legs {
		ids[i] = leg.TripID
	}
	return strings.Join(ids, "|")
}

// reconstruct walks the predecessor map back from dest to an origin and
// emits the journey. A revisited stop along the back-walk means the parent
// chain is cyclic; the candidate is discarded.
func (s *Snapshot) reconstruct(state *searchState, dest string) (Journey, bool) {
	var legs []Leg
	visited := map[string]bool{}

	cur := dest
	for {
		if visited[cur] {
			return Journey{}, false
		}
		visited[cur] = true

		entry, ok := state.parent[cur]
		if !ok {
			break
		}

		switch p := entry.(type) {
		case rideParent:
			info := s.Bundle.RoutesInfo[p.routeID]
			name := info.Short
			if name == "" {
				name = info.Long
			}
			legs = append(legs, Leg{
				FromID:    p.boardStop,
				ToID:      cur,
				DepTime:   p.boardDep,
				ArrTime:   p.arr,
				Duration:  p.arr - p.boardDep,
				TripID:    p.tripID,
				RouteID:   p.routeID,
				RouteName: name,
				Operator:  p.operator,
				TrainType: p.trainType,
			})
			cur = p.boardStop
		case transferParent:
			cur = p.from
		}
	}

	if len(legs) == 0 {
		return Journey{}, false
	}

	// The back-walk collected legs destination-first.
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}

	transfers := len(legs) - 1
	// A journey that departs from an inter-city neighbour of the origin
	// pays one extra transfer.
	if !state.originSet[legs[0].FromID] {
		transfers++
	}

	typeSet := map[string]bool{}
	for _, leg := range legs {
		typeSet[leg.TrainType] = true
	}
	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)

	return Journey{
		DepTime:    legs[0].DepTime,
		ArrTime:    legs[len(legs)-1].ArrTime,
		Duration:   legs[len(legs)-1].ArrTime - legs[0].DepTime,
		Transfers:  transfers,
		Legs:       legs,
		TrainTypes: types,
	}, true
}

// sortJourneys orders by fewest transfers, then shortest duration, then
// earliest departure.
func sortJourneys(journeys []Journey) {
	sort.SliceStable(journeys, func(i, j int) bool {
		if journeys[i].Transfers != journeys[j].Transfers {
			return journeys[i].Transfers < journeys[j].Transfers
		}
		if journeys[i].Duration != journeys[j].Duration {
			return journeys[i].Duration < journeys[j].Duration
		}
		return journeys[i].DepTime < journeys[j].DepTime
	})
}

// dedupeByArrivalCity keeps, per (departure time, arrival city), only the
// journey with the smallest duration. One physical departure would otherwise
// appear once per arrival-side platform.
func (s *Snapshot) dedupeByArrivalCity(journeys []Journey) []Journey {
	type cityDep struct {
		dep  int
		city string
	}
	best := map[cityDep]int{} // -> duration
	for _, j := range journeys {
		k := cityDep{j.DepTime, s.arrivalCityKey(j)}
		if d, ok := best[k]; !ok || j.Duration < d {
			best[k] = j.Duration
		}
	}

	kept := journeys[:0]
	emitted := map[cityDep]bool{}
	for _, j := range journeys {
		k := cityDep{j.DepTime, s.arrivalCityKey(j)}
		if j.Duration != best[k] || emitted[k] {
			continue
		}
		emitted[k] = true
		kept = append(kept, j)
	}
	return kept
}

// arrivalCityKey maps a journey's final stop to its (city, country) key.
// Stops outside any city group key on their own identifier so they are
// never merged.
func (s *Snapshot) arrivalCityKey(j Journey) string {
	stopID := j.Legs[len(j.Legs)-1].ToID
	if city, ok := s.stopCity[stopID]; ok {
		return city
	}
	return stopID
}
