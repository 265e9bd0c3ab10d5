package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/internal/feed"
)

func st(seq, arr, dep int) feed.StopTimeRecord {
	return feed.StopTimeRecord{Seq: seq, Arrival: arr, Departure: dep}
}

func assertNonDecreasing(t *testing.T, records []feed.StopTimeRecord) {
	t.Helper()
	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i].Arrival, records[i-1].Departure,
			"arrival at %d regresses", i)
		assert.GreaterOrEqual(t, records[i].Departure, records[i].Arrival,
			"departure before arrival at %d", i)
	}
}

func TestRepairStopTimesWellFormedTripUnchanged(t *testing.T) {
	records := []feed.StopTimeRecord{
		st(1, 7*3600, 7*3600),
		st(2, 8*3600, 8*3600+120),
		st(3, 9*3600, 9*3600),
	}
	repaired := RepairStopTimes(records)
	require.Len(t, repaired, 3)
	assert.Equal(t, records, repaired)
}

func TestRepairStopTimesCircularRotation(t *testing.T) {
	// A rolling-stock rotation published as one trip: the clock jumps back
	// by hours between the outbound and the return.
	records := []feed.StopTimeRecord{
		st(5, 11*3600+36*60, 11*3600+36*60),
		st(24, 12*3600+22*60, 12*3600+22*60),
		st(38, 13*3600+11*60, 13*3600+11*60),
		st(39, 6*3600+30*60, 6*3600+30*60),
		st(90, 8*3600+31*60, 8*3600+31*60),
	}

	repaired := RepairStopTimes(records)
	require.NotEmpty(t, repaired)
	assertNonDecreasing(t, repaired)

	// The segments are time-compatible once reordered, so all calls survive,
	// sorted by time.
	assert.Len(t, repaired, 5)
	assert.Equal(t, 6*3600+30*60, repaired[0].Arrival)
	assert.Equal(t, 13*3600+11*60, repaired[4].Arrival)
}

func TestRepairStopTimesKeepsLongestIncompatibleGroup(t *testing.T) {
	// Two overlapping segments that cannot be chained: the longer one wins.
	records := []feed.StopTimeRecord{
		st(1, 9*3600, 9*3600),
		st(2, 10*3600, 10*3600),
		st(3, 11*3600, 11*3600),
		st(4, 9*3600+30*60, 9*3600+30*60),
	}

	repaired := RepairStopTimes(records)
	require.Len(t, repaired, 3)
	assertNonDecreasing(t, repaired)
	assert.Equal(t, 9*3600, repaired[0].Arrival)
	assert.Equal(t, 11*3600, repaired[2].Arrival)
}

func TestRepairStopTimesMergesConsistentSegments(t *testing.T) {
	// Out-of-order sequence numbers but compatible times: segments are
	// recombined rather than truncated.
	records := []feed.StopTimeRecord{
		st(10, 9*3600, 9*3600),
		st(11, 10*3600, 10*3600),
		st(1, 7*3600, 7*3600),
		st(2, 8*3600, 8*3600),
	}

	repaired := RepairStopTimes(records)
	require.Len(t, repaired, 4)
	assertNonDecreasing(t, repaired)
	assert.Equal(t, 7*3600, repaired[0].Arrival)
	assert.Equal(t, 10*3600, repaired[3].Arrival)
}

func TestRepairStopTimesClampsSmallRegressions(t *testing.T) {
	// A regression below the split threshold is clamped, not split.
	records := []feed.StopTimeRecord{
		st(1, 7*3600, 7*3600),
		st(2, 7*3600-60, 7*3600-30),
	}

	repaired := RepairStopTimes(records)
	require.Len(t, repaired, 2)
	assertNonDecreasing(t, repaired)
}

func TestRepairStopTimesEmpty(t *testing.T) {
	assert.Nil(t, RepairStopTimes(nil))
}
