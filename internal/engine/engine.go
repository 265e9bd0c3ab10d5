// Package engine answers itinerary queries over the merged timetable with a
// round-based shortest-path search. All shared state is immutable after
// startup except the date-filtered index cache, which is internally
// synchronized; requests run the search concurrently without further
// coordination.
package engine

import "sort"

// Enumeration bounds: advancing the start time stops after this many empty
// advances in a row, or once the window spans more than fourteen hours.
const (
	emptyAdvanceStep  = 30 * 60
	maxEmptyAdvances  = 4
	enumerationWindow = 14 * 3600
)

// SearchRequest describes one itinerary query. Origins and Destinations are
// stop identifiers; unknown identifiers are ignored. A zero Date means the
// unfiltered timetable.
type SearchRequest struct {
	Origins      []string
	Destinations []string
	StartTime    int // seconds from midnight
	Date         string
	TrainTypes   []string // allow-set; empty means all
	AfterDep     int      // only journeys departing strictly later; <0 disables
}

// Search enumerates Pareto-optimal journeys: repeated round-based runs with
// successively later start times, deduplicated by trip sequence, sorted by
// (transfers, duration, departure), then deduplicated by arrival city.
func (s *Snapshot) Search(req SearchRequest) []Journey {
	origins := s.knownOnly(req.Origins)
	destinations := s.knownOnly(req.Destinations)
	if len(origins) == 0 || len(destinations) == 0 {
		return nil
	}

	var allowed map[string]bool
	if len(req.TrainTypes) > 0 {
		allowed = map[string]bool{}
		for _, t := range req.TrainTypes {
			allowed[t] = true
		}
	}

	stt := s.forDate(req.Date)

	start := req.StartTime
	if req.AfterDep >= 0 && req.AfterDep+1 > start {
		start = req.AfterDep + 1
	}

	var journeys []Journey
	seen := map[string]bool{}

	t := start
	empty := 0
	for t-start <= enumerationWindow && empty < maxEmptyAdvances {
		state := s.runRounds(stt, origins, t, req.Date, allowed)

		maxDep := -1
		for _, dest := range destinations {
			if _, reached := state.tauBest[dest]; !reached {
				continue
			}
			j, ok := s.reconstruct(state, dest)
			if !ok || seen[j.key()] {
				continue
			}
			seen[j.key()] = true
			journeys = append(journeys, j)
			if j.DepTime > maxDep {
				maxDep = j.DepTime
			}
		}

		if maxDep >= 0 {
			t = maxDep + 1
			empty = 0
		} else {
			t += emptyAdvanceStep
			empty++
		}
	}

	sortJourneys(journeys)
	return s.dedupeByArrivalCity(journeys)
}

// exploreStartHours is the grid of departure hours the reachable-set query
// samples across the service day.
var exploreStartHours = []int{5, 7, 9, 11, 13, 15, 17, 19}

// ExploreResult is the fastest journey found to one reachable stop.
type ExploreResult struct {
	StopID  string
	Journey Journey
}

// Explore returns, for every stop reachable from the origins on the given
// date, the fastest journey over the hourly start-time grid.
func (s *Snapshot) Explore(reqOrigins []string, date string) []ExploreResult {
	origins := s.knownOnly(reqOrigins)
	if len(origins) == 0 {
		return nil
	}
	originSet := map[string]bool{}
	for _, o := range origins {
		originSet[o] = true
	}

	stt := s.forDate(date)

	best := map[string]Journey{}
	for _, hour := range exploreStartHours {
		state := s.runRounds(stt, origins, hour*3600, date, nil)
		for stop := range state.tauBest {
			if originSet[stop] {
				continue
			}
			j, ok := s.reconstruct(state, stop)
			if !ok {
				continue
			}
			if prev, found := best[stop]; !found || j.Duration < prev.Duration {
				best[stop] = j
			}
		}
	}

	results := make([]ExploreResult, 0, len(best))
	for stop, j := range best {
		results = append(results, ExploreResult{StopID: stop, Journey: j})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Journey.Duration != results[j].Journey.Duration {
			return results[i].Journey.Duration < results[j].Journey.Duration
		}
		return results[i].StopID < results[j].StopID
	})
	return results
}

// TripsForRoute returns the trips of one route active on the given date,
// for inspection endpoints.
func (s *Snapshot) TripsForRoute(routeID, date string) []Journey {
	var out []Journey
	active := map[string]bool{}
	if date != "" {
		for _, serviceID := range s.Bundle.CalendarIndex[date] {
			active[serviceID] = true
		}
	}
	for _, trip := range s.Bundle.RouteTrips[routeID] {
		if date != "" && !active[trip.ServiceID] {
			continue
		}
		shift := tzShift(trip.Operator, date)
		first := trip.StopTimes[0]
		last := trip.StopTimes[len(trip.StopTimes)-1]
		info := s.Bundle.RoutesInfo[routeID]
		name := info.Short
		if name == "" {
			name = info.Long
		}
		out = append(out, Journey{
			DepTime:    first.DepartureTime + shift,
			ArrTime:    last.ArrivalTime + shift,
			Duration:   last.ArrivalTime - first.DepartureTime,
			TrainTypes: []string{trip.TrainType},
			Legs: []Leg{{
				FromID:    first.StopID,
				ToID:      last.StopID,
				DepTime:   first.DepartureTime + shift,
				ArrTime:   last.ArrivalTime + shift,
				Duration:  last.ArrivalTime - first.DepartureTime,
				TripID:    trip.TripID,
				RouteID:   routeID,
				RouteName: name,
				Operator:  trip.Operator,
				TrainType: trip.TrainType,
			}},
		})
	}
	return out
}

// LegStops returns the ordered stop chain a leg rides through, endpoints
// included. Used to attach geometry to responses.
func (s *Snapshot) LegStops(leg Leg) []string {
	for _, trip := range s.Bundle.RouteTrips[leg.RouteID] {
		if trip.TripID != leg.TripID {
			continue
		}
		var chain []string
		riding := false
		for _, st := range trip.StopTimes {
			if st.StopID == leg.FromID {
				riding = true
			}
			if riding {
				chain = append(chain, st.StopID)
			}
			if riding && st.StopID == leg.ToID {
				return chain
			}
		}
		break
	}
	return []string{leg.FromID, leg.ToID}
}

// StopCoords returns a stop's coordinates.
func (s *Snapshot) StopCoords(id string) (float64, float64) {
	stop := s.Bundle.Stops[id]
	return stop.Lat, stop.Lon
}

func (s *Snapshot) knownOnly(ids []string) []string {
	var out []string
	for _, id := range ids {
		if s.KnownStop(id) {
			out = append(out, id)
		}
	}
	return out
}
