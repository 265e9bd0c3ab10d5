package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTime converts an "H:MM:SS" string to seconds from local midnight.
// Hours may exceed 24 for trips crossing midnight.
func ParseTime(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("found %d parts in %q", len(parts), s)
	}

	hms := [3]int{}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("non-integer in %q pos %d", s, i)
		}
		hms[i] = v
	}

	if hms[0] < 0 || hms[0] > 99 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if hms[1] < 0 || hms[1] > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hms[2] < 0 || hms[2] > 59 {
		return 0, fmt.Errorf("invalid second in %q", s)
	}

	return hms[0]*3600 + hms[1]*60 + hms[2], nil
}

// ParseDate converts a "YYYYMMDD" feed date to a time.Time at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("20060102", strings.TrimSpace(s))
}

// FormatISODate renders a date as the "YYYY-MM-DD" key used by the calendar
// index.
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
