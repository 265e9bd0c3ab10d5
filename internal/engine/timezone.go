package engine

import "strconv"

// tzShift returns the seconds added to every time read on a trip of the
// given operator, normalizing it onto the France-local timeline.
//
// TI trips carry Italian local times. The offset to France is +2h during
// European summer time and +1h otherwise; the query month decides which,
// and dateless queries assume winter. The adjustment is applied at scan
// time, never stored.
func tzShift(operator, date string) int {
	if operator != "TI" {
		return 0
	}
	if len(date) < 7 {
		return 3600
	}
	month, err := strconv.Atoi(date[5:7])
	if err != nil {
		return 3600
	}
	if month >= 4 && month <= 9 {
		return 7200
	}
	return 3600
}
