// Package timetable assembles the merged, query-ready timetable from the
// per-operator feeds: route-shaped trip indexes, the per-date active-service
// index, and train-type labels. Feed anomalies (circular trips) are repaired
// here so the query engine can assume non-decreasing stop times.
package timetable

import (
	"log/slog"
	"sort"
	"time"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/feed"
)

// Build merges the operator feeds into the artifact bundle consumed by the
// query engine. Transfer and station artifacts are produced separately by
// the reconciler.
func Build(feeds []*feed.Feed, logger *slog.Logger) *artifact.Bundle {
	if logger == nil {
		logger = slog.Default()
	}

	b := &artifact.Bundle{
		Stops:         map[string]artifact.Stop{},
		RoutesInfo:    map[string]artifact.RouteInfo{},
		RoutesByStop:  map[string][]string{},
		RouteStops:    map[string][]string{},
		RouteTrips:    map[string][]artifact.Trip{},
		CalendarIndex: expandCalendars(feeds),
		Transfers:     map[string][]artifact.TransferEntry{},
	}

	tripsPerOp := map[string]int{}
	var operators []string

	for _, f := range feeds {
		operators = append(operators, f.Operator)
		for id, s := range f.Stops {
			b.Stops[id] = s
		}
		for id, r := range f.Routes {
			b.RoutesInfo[id] = r
		}

		dropped := 0
		for _, tr := range f.Trips {
			records := RepairStopTimes(f.StopTimes[tr.TripID])
			if len(records) == 0 {
				dropped++
				continue
			}

			route := f.Routes[tr.RouteID]
			trip := artifact.Trip{
				TripID:             tr.TripID,
				ServiceID:          tr.ServiceID,
				Operator:           f.Operator,
				TrainType:          Classify(f.Operator, tr.TripID, tr.Headsign, route.Short, records),
				FirstDepartureTime: records[0].Departure,
			}
			for _, st := range records {
				trip.StopTimes = append(trip.StopTimes, artifact.StopTime{
					StopID:        st.StopID,
					ArrivalTime:   st.Arrival,
					DepartureTime: st.Departure,
				})
			}
			b.RouteTrips[tr.RouteID] = append(b.RouteTrips[tr.RouteID], trip)
			tripsPerOp[f.Operator]++
		}
		if dropped > 0 {
			logger.Warn("dropped trips without usable stop times",
				slog.String("operator", f.Operator), slog.Int("count", dropped))
		}
	}

	for routeID, trips := range b.RouteTrips {
		sort.SliceStable(trips, func(i, j int) bool {
			return trips[i].FirstDepartureTime < trips[j].FirstDepartureTime
		})

		// The route's stop sequence is the longest observed trip, so it
		// carries every served stop.
		longest := 0
		for i, t := range trips {
			if len(t.StopTimes) > len(trips[longest].StopTimes) {
				longest = i
			}
		}
		seq := make([]string, 0, len(trips[longest].StopTimes))
		for _, st := range trips[longest].StopTimes {
			seq = append(seq, st.StopID)
		}
		b.RouteStops[routeID] = seq
	}

	for routeID, seq := range b.RouteStops {
		for _, stopID := range seq {
			b.RoutesByStop[stopID] = append(b.RoutesByStop[stopID], routeID)
		}
	}
	for _, routes := range b.RoutesByStop {
		sort.Strings(routes)
	}

	tripCount := 0
	for _, trips := range b.RouteTrips {
		tripCount += len(trips)
	}
	sort.Strings(operators)
	b.Meta = artifact.Meta{
		BuiltAt:       time.Now().UTC(),
		SchemaVersion: artifact.SchemaVersion,
		Operators:     operators,
		StopCount:     len(b.Stops),
		RouteCount:    len(b.RoutesInfo),
		TripCount:     tripCount,
		TripsPerOp:    tripsPerOp,
	}

	return b
}
