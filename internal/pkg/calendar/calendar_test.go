package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestInclusiveDaySpan(t *testing.T) {
	assert.Equal(t, 2, InclusiveDaySpan(date(2024, time.December, 4), date(2024, time.December, 5)))
	assert.Equal(t, 1, InclusiveDaySpan(date(2024, time.December, 4), date(2024, time.December, 4)))
	assert.Equal(t, 7, InclusiveDaySpan(date(2024, time.December, 2), date(2024, time.December, 8)))

	// Span is over calendar days, independent of the time-of-day part.
	late := time.Date(2024, time.December, 4, 23, 50, 0, 0, time.Local)
	early := time.Date(2024, time.December, 5, 0, 10, 0, 0, time.Local)
	assert.Equal(t, 2, InclusiveDaySpan(late, early))
}

func TestWorkDaysBetween(t *testing.T) {
	mon := date(2024, time.December, 2)
	fri := date(2024, time.December, 6)
	sat := date(2024, time.December, 7)
	sun := date(2024, time.December, 8)

	assert.Equal(t, 5, WorkDaysBetween(mon, fri))
	assert.Equal(t, 0, WorkDaysBetween(sat, sun))
	assert.Equal(t, 5, WorkDaysBetween(mon, sun))
	assert.Equal(t, 1, WorkDaysBetween(mon, mon))
	assert.Equal(t, 0, WorkDaysBetween(fri, mon))
}

func TestMonthPeriod(t *testing.T) {
	p := MonthPeriod(time.Date(2024, time.February, 15, 10, 30, 0, 0, time.Local))

	assert.Equal(t, date(2024, time.February, 1), p.Start)
	assert.Equal(t, 2024, p.End.Year())
	assert.Equal(t, time.February, p.End.Month())
	assert.Equal(t, 29, p.End.Day()) // leap year
	assert.True(t, p.Contains(date(2024, time.February, 29)))
	assert.False(t, p.Contains(date(2024, time.March, 1)))
}

func TestQuarterPeriod(t *testing.T) {
	cases := []struct {
		month      time.Month
		startMonth time.Month
		endMonth   time.Month
	}{
		{time.January, time.January, time.March},
		{time.March, time.January, time.March},
		{time.April, time.April, time.June},
		{time.August, time.July, time.September},
		{time.December, time.October, time.December},
	}

	for _, tc := range cases {
		p := QuarterPeriod(time.Date(2024, tc.month, 10, 0, 0, 0, 0, time.Local))
		assert.Equal(t, tc.startMonth, p.Start.Month(), "quarter start for %s", tc.month)
		assert.Equal(t, 1, p.Start.Day())
		assert.Equal(t, tc.endMonth, p.End.Month(), "quarter end for %s", tc.month)
	}
}

func TestDayBounds(t *testing.T) {
	now := time.Date(2024, time.December, 4, 14, 22, 31, 0, time.Local)
	p := DayBounds(now)

	assert.Equal(t, date(2024, time.December, 4), p.Start)
	assert.True(t, p.Contains(now))
	assert.True(t, p.Contains(time.Date(2024, time.December, 4, 23, 59, 59, 999000000, time.Local)))
	assert.False(t, p.Contains(date(2024, time.December, 5)))
}

func TestClampToPeriod(t *testing.T) {
	month := MonthPeriod(date(2024, time.December, 15))

	start, end := ClampToPeriod(date(2024, time.November, 28), date(2024, time.December, 3), month)
	assert.Equal(t, date(2024, time.December, 1), start)
	assert.Equal(t, date(2024, time.December, 3), end)

	start, end = ClampToPeriod(date(2024, time.December, 30), date(2025, time.January, 2), month)
	assert.Equal(t, date(2024, time.December, 30), start)
	assert.Equal(t, month.End, end)
}
