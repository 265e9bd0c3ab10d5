package timetable

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/internal/feed"
)

// backwardJumpThreshold is the clock regression, in seconds, that marks a
// segment boundary inside a trip. Some feeds (notably TI) encode a
// rolling-stock rotation as a single trip whose clock jumps back by hours
// between the outbound and the next day's return.
const backwardJumpThreshold = 600

// RepairStopTimes turns a raw stop-time list into the canonical trip:
// non-decreasing times, ordered by time. Returns nil when nothing usable
// remains.
func RepairStopTimes(records []feed.StopTimeRecord) []feed.StopTimeRecord {
	if len(records) == 0 {
		return nil
	}

	sorted := make([]feed.StopTimeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Seq < sorted[j].Seq
	})

	// Split at every backward jump of more than the threshold.
	var segments [][]feed.StopTimeRecord
	start := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Arrival < sorted[i-1].Departure-backwardJumpThreshold {
			segments = append(segments, sorted[start:i])
			start = i
		}
	}
	segments = append(segments, sorted[start:])

	if len(segments) > 1 {
		sort.SliceStable(segments, func(i, j int) bool {
			return segments[i][0].Arrival < segments[j][0].Arrival
		})

		// Chain adjacent segments whose boundaries are consistent; a
		// break starts a new group.
		var groups [][]feed.StopTimeRecord
		group := append([]feed.StopTimeRecord{}, segments[0]...)
		for _, seg := range segments[1:] {
			if seg[0].Arrival >= group[len(group)-1].Departure-backwardJumpThreshold {
				group = append(group, seg...)
			} else {
				groups = append(groups, group)
				group = append([]feed.StopTimeRecord{}, seg...)
			}
		}
		groups = append(groups, group)

		longest := groups[0]
		for _, g := range groups[1:] {
			if len(g) > len(longest) {
				longest = g
			}
		}
		sorted = longest
	}

	// Concatenation can leave sequence numbers out of order, so the final
	// ordering is by time, not by sequence.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Arrival != sorted[j].Arrival {
			return sorted[i].Arrival < sorted[j].Arrival
		}
		return sorted[i].Departure < sorted[j].Departure
	})

	// Clamp any residual sub-threshold regressions so consumers can rely
	// on non-decreasing times along the trip.
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Arrival < sorted[i-1].Departure {
			sorted[i].Arrival = sorted[i-1].Departure
		}
		if sorted[i].Departure < sorted[i].Arrival {
			sorted[i].Departure = sorted[i].Arrival
		}
	}

	return sorted
}
