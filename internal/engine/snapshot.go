package engine

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/reconcile"
)

// dateCacheSize bounds the per-date index cache. Entries are large
// (megabytes) and insertion is rare, so the cache stays tiny.
const dateCacheSize = 7

// tripRef locates one trip's call at one stop: the route, the trip, and the
// index of the stop within the trip.
type tripRef struct {
	routeID string
	trip    *artifact.Trip
	idx     int
}

// Snapshot owns the immutable timetable artifacts plus the derived indexes
// the round-based search scans. It is built once at startup; the date cache
// is its only mutable member and is safe for concurrent use.
type Snapshot struct {
	Bundle *artifact.Bundle

	stopToTrips map[string][]tripRef
	transfers   map[string][]transferEdge
	stopNames   map[string]string

	// stopCity maps member stops of city-grouped stations to their
	// "city|country" key; stationStops and cityStops resolve query
	// endpoints given by name instead of identifier.
	stopCity     map[string]string
	stationStops map[string][]string
	cityStops    map[string][]string

	dateCache *lru.Cache[string, map[string][]tripRef]
}

// NewSnapshot builds the derived indexes over the full, unfiltered
// timetable. Manifest-derived station names override feed names.
func NewSnapshot(b *artifact.Bundle) *Snapshot {
	cache, _ := lru.New[string, map[string][]tripRef](dateCacheSize)

	s := &Snapshot{
		Bundle:    b,
		transfers: normalizeTransfers(b.Transfers),
		stopNames: map[string]string{},
		dateCache: cache,
	}

	for id, stop := range b.Stops {
		s.stopNames[id] = stop.Name
	}
	for _, st := range b.Stations {
		if st.DisplayName == "" {
			continue
		}
		for _, id := range st.MemberStopIDs {
			s.stopNames[id] = st.DisplayName
		}
	}

	s.stopCity = map[string]string{}
	s.stationStops = map[string][]string{}
	s.cityStops = map[string][]string{}

	cityStations := map[string]int{}
	for _, st := range b.Stations {
		if st.City != "" {
			cityStations[cityKeyOf(st.City, st.Country)]++
		}
	}
	for _, st := range b.Stations {
		if key := normalizeKey(st.DisplayName); key != "" {
			s.stationStops[key] = append(s.stationStops[key], st.MemberStopIDs...)
		}
		if st.City == "" {
			continue
		}
		city := cityKeyOf(st.City, st.Country)
		for _, id := range st.MemberStopIDs {
			s.stopCity[id] = city
		}
		// Only cities holding at least two stations are exposed as city
		// groups for search-from-city queries.
		if cityStations[city] >= 2 {
			s.cityStops[city] = append(s.cityStops[city], st.MemberStopIDs...)
		}
	}

	s.stopToTrips = buildStopToTrips(b, nil)
	return s
}

// buildStopToTrips indexes every trip call by stop. When active is non-nil,
// only trips whose service is in the set are indexed. Routes are walked in
// sorted order so tie-breaking by insertion order is stable across builds.
func buildStopToTrips(b *artifact.Bundle, active map[string]bool) map[string][]tripRef {
	routeIDs := make([]string, 0, len(b.RouteTrips))
	for routeID := range b.RouteTrips {
		routeIDs = append(routeIDs, routeID)
	}
	sort.Strings(routeIDs)

	index := map[string][]tripRef{}
	for _, routeID := range routeIDs {
		trips := b.RouteTrips[routeID]
		for i := range trips {
			trip := &trips[i]
			if active != nil && !active[trip.ServiceID] {
				continue
			}
			for idx, st := range trip.StopTimes {
				index[st.StopID] = append(index[st.StopID], tripRef{
					routeID: routeID,
					trip:    trip,
					idx:     idx,
				})
			}
		}
	}
	return index
}

// forDate returns the stop index restricted to services active on the given
// ISO date. A dateless query reuses the unfiltered index.
func (s *Snapshot) forDate(date string) map[string][]tripRef {
	if date == "" {
		return s.stopToTrips
	}
	if cached, ok := s.dateCache.Get(date); ok {
		return cached
	}

	active := map[string]bool{}
	for _, serviceID := range s.Bundle.CalendarIndex[date] {
		active[serviceID] = true
	}
	filtered := buildStopToTrips(s.Bundle, active)
	s.dateCache.Add(date, filtered)
	return filtered
}

// StopName returns the canonical display name of a stop.
func (s *Snapshot) StopName(id string) string {
	return s.stopNames[id]
}

// KnownStop reports whether the stop exists in the merged universe.
func (s *Snapshot) KnownStop(id string) bool {
	_, ok := s.Bundle.Stops[id]
	return ok
}

// StationStops returns the member stops of the station with the given
// display name, or nil.
func (s *Snapshot) StationStops(name string) []string {
	return s.stationStops[normalizeKey(name)]
}

// CityStops returns the member stops of the city group named by city and
// country, or nil when the city holds fewer than two stations.
func (s *Snapshot) CityStops(city, country string) []string {
	return s.cityStops[cityKeyOf(city, country)]
}

func cityKeyOf(city, country string) string {
	return normalizeKey(city) + "|" + country
}

// normalizeKey matches the reconciler's name normalization so endpoint
// resolution agrees with how stations were keyed at build time.
func normalizeKey(name string) string {
	return reconcile.NormalizeName(name)
}
