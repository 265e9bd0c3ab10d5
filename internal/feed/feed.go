// Package feed reads one operator's raw schedule directory into normalized,
// operator-prefixed records. Parsing is tolerant: a missing file yields an
// empty table with a warning, and malformed rows are skipped, so a partial
// feed still produces a usable timetable.
package feed

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
)

func init() {
	// LazyCSVReader survives sloppy quoting; the BOM reader strips unicode
	// BOMs some operators prepend.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})
}

// TripRecord is one trips.txt row with prefixed identifiers.
type TripRecord struct {
	TripID    string
	RouteID   string
	ServiceID string
	Headsign  string
}

// StopTimeRecord is one stop_times.txt row. RawStopID keeps the feed's
// unprefixed stop-point identifier for train-type classification.
type StopTimeRecord struct {
	StopID    string
	RawStopID string
	Seq       int
	Arrival   int
	Departure int
}

// Calendar is one calendar.txt row: a weekly pattern over a validity window.
// Weekdays is indexed by time.Weekday (Sunday = 0).
type Calendar struct {
	ServiceID string
	Weekdays  [7]bool
	StartDate string // YYYYMMDD
	EndDate   string // YYYYMMDD
}

// CalendarDate is one calendar_dates.txt row. ExceptionType 1 adds service
// on the date, 2 removes it.
type CalendarDate struct {
	ServiceID     string
	Date          string // YYYYMMDD
	ExceptionType int
}

// TransferPair is one row of the feed's own transfer table, used by the
// station reconciler as a whitelist source.
type TransferPair struct {
	From string
	To   string
}

// Feed holds one operator's normalized tables. All identifiers carry the
// "<OP>:" prefix.
type Feed struct {
	Operator      string
	Stops         map[string]artifact.Stop
	Parents       map[string]string // stop id -> administrative parent area
	Routes        map[string]artifact.RouteInfo
	Trips         []TripRecord
	StopTimes     map[string][]StopTimeRecord
	Calendars     []Calendar
	CalendarDates []CalendarDate
	Transfers     []TransferPair
}

// ReadDir parses the operator's schedule directory. The operator code
// becomes the identifier prefix and selects the keep-rule applied to routes.
func ReadDir(dir, operator string, logger *slog.Logger) (*Feed, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("operator", operator))

	f := &Feed{
		Operator:  operator,
		Stops:     map[string]artifact.Stop{},
		Parents:   map[string]string{},
		Routes:    map[string]artifact.RouteInfo{},
		StopTimes: map[string][]StopTimeRecord{},
	}

	if err := parseFile(dir, "routes.txt", logger, func(r io.Reader) error {
		return parseRoutes(f, r)
	}); err != nil {
		return nil, err
	}
	if err := parseFile(dir, "stops.txt", logger, func(r io.Reader) error {
		return parseStops(f, r)
	}); err != nil {
		return nil, err
	}
	if err := parseFile(dir, "trips.txt", logger, func(r io.Reader) error {
		return parseTrips(f, r)
	}); err != nil {
		return nil, err
	}
	if err := parseFile(dir, "stop_times.txt", logger, func(r io.Reader) error {
		return parseStopTimes(f, r, logger)
	}); err != nil {
		return nil, err
	}
	if err := parseFile(dir, "calendar.txt", logger, func(r io.Reader) error {
		return parseCalendar(f, r)
	}); err != nil {
		return nil, err
	}
	if err := parseFile(dir, "calendar_dates.txt", logger, func(r io.Reader) error {
		return parseCalendarDates(f, r, logger)
	}); err != nil {
		return nil, err
	}
	if err := parseFile(dir, "transfers.txt", logger, func(r io.Reader) error {
		return parseTransfers(f, r)
	}); err != nil {
		return nil, err
	}

	logger.Info("feed parsed",
		slog.Int("stops", len(f.Stops)),
		slog.Int("routes", len(f.Routes)),
		slog.Int("trips", len(f.Trips)))

	return f, nil
}

// parseFile opens one schedule file and hands it to fn. A missing file is a
// warning, not an error.
func parseFile(dir, name string, logger *slog.Logger, fn func(io.Reader) error) error {
	path := filepath.Join(dir, name)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("feed file missing, treating as empty", slog.String("file", name))
			return nil
		}
		return err
	}
	defer file.Close()
	return fn(file)
}
