package timetable

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/internal/feed"
)

// expandCalendars walks every weekly service pattern over its validity
// window, enumerates concrete dates, then applies date-level exceptions.
// The result maps ISO dates (YYYY-MM-DD) to the sorted set of active
// service identifiers.
func expandCalendars(feeds []*feed.Feed) map[string][]string {
	active := map[string]map[string]bool{}

	add := func(date, serviceID string) {
		if active[date] == nil {
			active[date] = map[string]bool{}
		}
		active[date][serviceID] = true
	}

	for _, f := range feeds {
		for _, cal := range f.Calendars {
			start, err := feed.ParseDate(cal.StartDate)
			if err != nil {
				continue
			}
			end, err := feed.ParseDate(cal.EndDate)
			if err != nil || end.Before(start) {
				continue
			}
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				if cal.Weekdays[int(d.Weekday())] {
					add(feed.FormatISODate(d), cal.ServiceID)
				}
			}
		}

		// Exceptions override the weekly pattern.
		for _, exc := range f.CalendarDates {
			d, err := feed.ParseDate(exc.Date)
			if err != nil {
				continue
			}
			iso := feed.FormatISODate(d)
			switch exc.ExceptionType {
			case 1:
				add(iso, exc.ServiceID)
			case 2:
				if active[iso] != nil {
					delete(active[iso], exc.ServiceID)
				}
			}
		}
	}

	index := make(map[string][]string, len(active))
	for date, services := range active {
		if len(services) == 0 {
			continue
		}
		ids := make([]string, 0, len(services))
		for id := range services {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		index[date] = ids
	}
	return index
}
