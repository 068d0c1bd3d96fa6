// Package workday counts the working days (Monday to Friday) inside an
// inclusive date range.
package workday

import (
	"time"

	"github.com/teambition/rrule-go"
)

var weekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}

// Dates returns every weekday in [start, end]. Times of day are ignored.
func Dates(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	if end.Before(start) {
		return nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Until:     end,
		Byweekday: weekdays,
	})
	if err != nil {
		// Only reachable with an invalid option set, which is fixed above.
		return nil
	}
	return r.All()
}

// Count returns the number of weekdays in [start, end].
func Count(start, end time.Time) int {
	return len(Dates(start, end))
}

// Truncate drops the time of day and pins the date to UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
