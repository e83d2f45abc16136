// Package calendar holds the date arithmetic shared by the leave and
// attendance services: inclusive day spans, weekday-only work-day counts,
// and the month/quarter accrual periods leave quotas are scoped to.
package calendar

import "time"

// Period is an inclusive [Start, End] time window.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// DayStart truncates t to local midnight.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable instant of t's calendar day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayBounds returns the [00:00:00, 23:59:59.999...] window of t's day.
func DayBounds(t time.Time) Period {
	return Period{Start: DayStart(t), End: DayEnd(t)}
}

// InclusiveDaySpan counts calendar days from start to end with both
// endpoints included, so span(Dec 4, Dec 5) == 2. Weekends count.
func InclusiveDaySpan(start, end time.Time) int {
	s := DayStart(start)
	e := DayStart(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// WorkDaysBetween counts the days in [start, end] whose weekday is
// Monday through Friday. Returns 0 when end precedes start.
func WorkDaysBetween(start, end time.Time) int {
	count := 0
	for d := DayStart(start); !d.After(DayStart(end)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// MonthPeriod returns the calendar month containing now.
func MonthPeriod(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Period{Start: start, End: end}
}

// QuarterPeriod returns the calendar quarter containing now. Quarters are
// anchored at January, April, July and October.
func QuarterPeriod(now time.Time) Period {
	quarter := (int(now.Month()) - 1) / 3
	start := time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	return Period{Start: start, End: end}
}

// ClampToPeriod narrows [start, end] to the part overlapping p.
// Callers must check for overlap beforehand; a disjoint range yields an
// inverted result.
func ClampToPeriod(start, end time.Time, p Period) (time.Time, time.Time) {
	if start.Before(p.Start) {
		start = p.Start
	}
	if end.After(p.End) {
		end = p.End
	}
	return start, end
}
