// Package artifact defines the persisted schedule artifacts shared between
// the offline build pipeline and the query engine. Every artifact is a
// single JSON document in the data directory; the engine loads them once at
// startup and treats them as immutable.
package artifact

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Artifact file names within the data directory.
const (
	StopsFile         = "stops.json"
	RoutesInfoFile    = "routes_info.json"
	RoutesByStopFile  = "routes_by_stop.json"
	RouteStopsFile    = "route_stops.json"
	RouteTripsFile    = "route_trips.json"
	CalendarIndexFile = "calendar_index.json"
	TransferIndexFile = "transfer_index.json"
	StationsFile      = "stations.json"
	MetaFile          = "meta.json"
)

// SchemaVersion is bumped whenever an artifact shape changes.
const SchemaVersion = 3

// Stop is one platform identifier from one operator. Immutable after
// ingestion.
type Stop struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Operator string  `json:"operator"`
}

// RouteInfo describes a logical route as provided by the feed.
type RouteInfo struct {
	Short    string `json:"short"`
	Long     string `json:"long"`
	Type     int    `json:"type"`
	Operator string `json:"operator"`
}

// StopTime is one scheduled call of a trip. Times are seconds from local
// midnight and may exceed 86400 for trips crossing midnight.
type StopTime struct {
	StopID        string `json:"stopId"`
	ArrivalTime   int    `json:"arrivalTime"`
	DepartureTime int    `json:"departureTime"`
}

// Trip is one scheduled service instance along a route.
type Trip struct {
	TripID             string     `json:"tripId"`
	ServiceID          string     `json:"serviceId"`
	Operator           string     `json:"operator"`
	TrainType          string     `json:"trainType"`
	FirstDepartureTime int        `json:"firstDepartureTime"`
	StopTimes          []StopTime `json:"stopTimes"`
}

// Station is the logical union of stops that constitute one physical place.
type Station struct {
	DisplayName   string   `json:"displayName"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	MemberStopIDs []string `json:"memberStopIds"`
	Operators     []string `json:"operators"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
}

// TransferEntry is one walking edge out of a stop. The persisted form is
// heterogeneous: plain strings for same-station siblings, and tagged objects
// for inter-city links.
type TransferEntry struct {
	ID        string
	InterCity bool
}

func (e TransferEntry) MarshalJSON() ([]byte, error) {
	if !e.InterCity {
		return json.Marshal(e.ID)
	}
	return json.Marshal(struct {
		ID        string `json:"id"`
		InterCity bool   `json:"interCity"`
	}{ID: e.ID, InterCity: true})
}

func (e *TransferEntry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		e.InterCity = false
		return json.Unmarshal(data, &e.ID)
	}
	var tagged struct {
		ID        string `json:"id"`
		InterCity bool   `json:"interCity"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	e.ID = tagged.ID
	e.InterCity = tagged.InterCity
	return nil
}

// Meta holds build metadata.
type Meta struct {
	BuiltAt       time.Time      `json:"builtAt"`
	SchemaVersion int            `json:"schemaVersion"`
	Operators     []string       `json:"operators"`
	StopCount     int            `json:"stopCount"`
	RouteCount    int            `json:"routeCount"`
	TripCount     int            `json:"tripCount"`
	StationCount  int            `json:"stationCount"`
	TripsPerOp    map[string]int `json:"tripsPerOperator,omitempty"`
}

// Bundle is the full artifact set.
type Bundle struct {
	Stops         map[string]Stop            `json:"-"`
	RoutesInfo    map[string]RouteInfo       `json:"-"`
	RoutesByStop  map[string][]string        `json:"-"`
	RouteStops    map[string][]string        `json:"-"`
	RouteTrips    map[string][]Trip          `json:"-"`
	CalendarIndex map[string][]string        `json:"-"`
	Transfers     map[string][]TransferEntry `json:"-"`
	Stations      []Station                  `json:"-"`
	Meta          Meta                       `json:"-"`
}

// Operator returns the operator prefix of an identifier, or "" when the
// identifier carries no prefix.
func Operator(id string) string {
	if i := strings.IndexByte(id, ':'); i > 0 {
		return id[:i]
	}
	return ""
}

// PrefixID attaches an operator prefix to a raw feed identifier.
func PrefixID(operator, raw string) string {
	return fmt.Sprintf("%s:%s", operator, raw)
}
