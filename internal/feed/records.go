package feed

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
)

type routeCSV struct {
	RouteID   string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
}

type stopCSV struct {
	StopID        string `csv:"stop_id"`
	Name          string `csv:"stop_name"`
	Lat           string `csv:"stop_lat"`
	Lon           string `csv:"stop_lon"`
	ParentStation string `csv:"parent_station"`
}

type transferCSV struct {
	FromStopID string `csv:"from_stop_id"`
	ToStopID   string `csv:"to_stop_id"`
}

type tripCSV struct {
	TripID    string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
}

type stopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  string `csv:"stop_sequence"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
}

type calendarCSV struct {
	ServiceID string `csv:"service_id"`
	Monday    string `csv:"monday"`
	Tuesday   string `csv:"tuesday"`
	Wednesday string `csv:"wednesday"`
	Thursday  string `csv:"thursday"`
	Friday    string `csv:"friday"`
	Saturday  string `csv:"saturday"`
	Sunday    string `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

type calendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType string `csv:"exception_type"`
}

func parseRoutes(f *Feed, data io.Reader) error {
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *routeCSV) error {
		if row.RouteID == "" {
			return nil
		}
		routeType, err := strconv.Atoi(row.Type)
		if err != nil {
			routeType = -1
		}
		if !keepRoute(f.Operator, routeType, row.ShortName) {
			return nil
		}
		f.Routes[artifact.PrefixID(f.Operator, row.RouteID)] = artifact.RouteInfo{
			Short:    row.ShortName,
			Long:     row.LongName,
			Type:     routeType,
			Operator: f.Operator,
		}
		return nil
	})
	return errors.Wrap(err, "unmarshaling routes csv")
}

func parseStops(f *Feed, data io.Reader) error {
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *stopCSV) error {
		if row.StopID == "" {
			return nil
		}
		lat, errLat := strconv.ParseFloat(row.Lat, 64)
		lon, errLon := strconv.ParseFloat(row.Lon, 64)
		if errLat != nil || errLon != nil {
			lat, lon = 0, 0
		}
		id := artifact.PrefixID(f.Operator, row.StopID)
		f.Stops[id] = artifact.Stop{
			Name:     row.Name,
			Lat:      lat,
			Lon:      lon,
			Operator: f.Operator,
		}
		if row.ParentStation != "" {
			f.Parents[id] = artifact.PrefixID(f.Operator, row.ParentStation)
		}
		return nil
	})
	return errors.Wrap(err, "unmarshaling stops csv")
}

func parseTransfers(f *Feed, data io.Reader) error {
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *transferCSV) error {
		if row.FromStopID == "" || row.ToStopID == "" || row.FromStopID == row.ToStopID {
			return nil
		}
		f.Transfers = append(f.Transfers, TransferPair{
			From: artifact.PrefixID(f.Operator, row.FromStopID),
			To:   artifact.PrefixID(f.Operator, row.ToStopID),
		})
		return nil
	})
	return errors.Wrap(err, "unmarshaling transfers csv")
}

func parseTrips(f *Feed, data io.Reader) error {
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *tripCSV) error {
		if row.TripID == "" || row.RouteID == "" {
			return nil
		}
		routeID := artifact.PrefixID(f.Operator, row.RouteID)
		// Trips on filtered-out routes are dropped here, before any
		// cross-referencing.
		if _, ok := f.Routes[routeID]; !ok {
			return nil
		}
		f.Trips = append(f.Trips, TripRecord{
			TripID:    artifact.PrefixID(f.Operator, row.TripID),
			RouteID:   routeID,
			ServiceID: artifact.PrefixID(f.Operator, row.ServiceID),
			Headsign:  row.Headsign,
		})
		return nil
	})
	return errors.Wrap(err, "unmarshaling trips csv")
}

func parseStopTimes(f *Feed, data io.Reader, logger *slog.Logger) error {
	kept := map[string]bool{}
	for _, t := range f.Trips {
		kept[t.TripID] = true
	}

	skipped := 0
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *stopTimeCSV) error {
		tripID := artifact.PrefixID(f.Operator, row.TripID)
		if !kept[tripID] {
			return nil
		}
		seq, errSeq := strconv.Atoi(row.StopSequence)
		arr, errArr := ParseTime(row.ArrivalTime)
		dep, errDep := ParseTime(row.DepartureTime)
		if errSeq != nil || errArr != nil || errDep != nil {
			skipped++
			return nil
		}
		f.StopTimes[tripID] = append(f.StopTimes[tripID], StopTimeRecord{
			StopID:    artifact.PrefixID(f.Operator, row.StopID),
			RawStopID: row.StopID,
			Seq:       seq,
			Arrival:   arr,
			Departure: dep,
		})
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "unmarshaling stop_times csv")
	}
	if skipped > 0 {
		logger.Warn("skipped malformed stop_times rows", slog.Int("count", skipped))
	}
	return nil
}

func parseCalendar(f *Feed, data io.Reader) error {
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *calendarCSV) error {
		if row.ServiceID == "" {
			return nil
		}
		cal := Calendar{
			ServiceID: artifact.PrefixID(f.Operator, row.ServiceID),
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		}
		// Weekdays indexed by time.Weekday: Sunday first.
		for i, v := range []string{row.Sunday, row.Monday, row.Tuesday, row.Wednesday, row.Thursday, row.Friday, row.Saturday} {
			cal.Weekdays[i] = v == "1"
		}
		f.Calendars = append(f.Calendars, cal)
		return nil
	})
	return errors.Wrap(err, "unmarshaling calendar csv")
}

func parseCalendarDates(f *Feed, data io.Reader, logger *slog.Logger) error {
	skipped := 0
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *calendarDateCSV) error {
		if row.ServiceID == "" || len(row.Date) != 8 {
			skipped++
			return nil
		}
		excType, convErr := strconv.Atoi(row.ExceptionType)
		if convErr != nil || (excType != 1 && excType != 2) {
			skipped++
			return nil
		}
		f.CalendarDates = append(f.CalendarDates, CalendarDate{
			ServiceID:     artifact.PrefixID(f.Operator, row.ServiceID),
			Date:          row.Date,
			ExceptionType: excType,
		})
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "unmarshaling calendar_dates csv")
	}
	if skipped > 0 {
		logger.Warn("skipped malformed calendar_dates rows", slog.Int("count", skipped))
	}
	return nil
}
