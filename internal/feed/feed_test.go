package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadDirPrefixesIdentifiers(t *testing.T) {
	dir := t.TempDir()
	// routes.txt carries a UTF-8 BOM, as some operator exports do.
	writeFeedFile(t, dir, "routes.txt",
		"\xef\xbb\xbfroute_id,route_short_name,route_long_name,route_type\n"+
			"r1,TGV,Paris - Lyon,2\n"+
			"r2,CAR,Road replacement,2\n")
	writeFeedFile(t, dir, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon,parent_station\n"+
			"s1,Paris Gare de Lyon,48.844,2.374,p1\n"+
			"s2,Lyon Part-Dieu,45.760,4.859,\n")
	writeFeedFile(t, dir, "trips.txt",
		"trip_id,route_id,service_id,trip_headsign\n"+
			"t1,r1,svc1,Lyon\n"+
			"t2,r2,svc1,Road\n")
	writeFeedFile(t, dir, "stop_times.txt",
		"trip_id,stop_id,stop_sequence,arrival_time,departure_time\n"+
			"t1,s1,1,07:00:00,07:00:00\n"+
			"t1,s2,2,09:00:00,09:00:00\n"+
			"t1,s2,3,bogus,09:10:00\n")
	writeFeedFile(t, dir, "calendar.txt",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n"+
			"svc1,1,1,1,1,1,0,0,20250101,20250131\n")
	writeFeedFile(t, dir, "calendar_dates.txt",
		"service_id,date,exception_type\n"+
			"svc1,20250110,2\n"+
			"svc1,20250111,1\n"+
			"svc1,badrow,9\n")
	writeFeedFile(t, dir, "transfers.txt",
		"from_stop_id,to_stop_id,transfer_type\n"+
			"s1,s2,2\n"+
			"s1,s1,2\n")

	f, err := ReadDir(dir, "SNCF", nil)
	require.NoError(t, err)

	// Identifiers are operator-prefixed everywhere.
	assert.Contains(t, f.Stops, "SNCF:s1")
	assert.Contains(t, f.Stops, "SNCF:s2")
	assert.Equal(t, "Paris Gare de Lyon", f.Stops["SNCF:s1"].Name)
	assert.Equal(t, "SNCF:p1", f.Parents["SNCF:s1"])
	assert.NotContains(t, f.Parents, "SNCF:s2")

	// The CAR route and its trip are filtered by the keep-rule.
	assert.Contains(t, f.Routes, "SNCF:r1")
	assert.NotContains(t, f.Routes, "SNCF:r2")
	require.Len(t, f.Trips, 1)
	assert.Equal(t, "SNCF:t1", f.Trips[0].TripID)
	assert.Equal(t, "SNCF:svc1", f.Trips[0].ServiceID)

	// The malformed stop_times row is skipped, the rest kept in order.
	require.Len(t, f.StopTimes["SNCF:t1"], 2)
	assert.Equal(t, "SNCF:s1", f.StopTimes["SNCF:t1"][0].StopID)
	assert.Equal(t, "s1", f.StopTimes["SNCF:t1"][0].RawStopID)
	assert.Equal(t, 7*3600, f.StopTimes["SNCF:t1"][0].Departure)

	// Calendar weekdays are indexed Sunday-first.
	require.Len(t, f.Calendars, 1)
	cal := f.Calendars[0]
	assert.Equal(t, "SNCF:svc1", cal.ServiceID)
	assert.False(t, cal.Weekdays[0], "sunday")
	assert.True(t, cal.Weekdays[1], "monday")
	assert.True(t, cal.Weekdays[5], "friday")
	assert.False(t, cal.Weekdays[6], "saturday")

	// The malformed calendar_dates row is dropped.
	require.Len(t, f.CalendarDates, 2)
	assert.Equal(t, 2, f.CalendarDates[0].ExceptionType)

	// Self-transfers are dropped.
	require.Len(t, f.Transfers, 1)
	assert.Equal(t, TransferPair{From: "SNCF:s1", To: "SNCF:s2"}, f.Transfers[0])
}

func TestReadDirMissingFilesAreEmptyTables(t *testing.T) {
	dir := t.TempDir()
	writeFeedFile(t, dir, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon\n"+
			"s1,Milano Centrale,45.486,9.204\n")

	f, err := ReadDir(dir, "TI", nil)
	require.NoError(t, err)

	assert.Len(t, f.Stops, 1)
	assert.Empty(t, f.Routes)
	assert.Empty(t, f.Trips)
	assert.Empty(t, f.StopTimes)
	assert.Empty(t, f.Calendars)
}
