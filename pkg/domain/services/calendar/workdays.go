package calendar

import (
	"math"
	"time"
)

// DateOf truncates t to midnight of its calendar date, keeping the location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddWorkingDays walks forward from the day after from and returns the date on
// which the n-th working day is reached. For n <= 0 it returns from's date.
func (c *HolidayCalendar) AddWorkingDays(from time.Time, n int) time.Time {
	day := DateOf(from)
	for counted := 0; counted < n; {
		day = day.AddDate(0, 0, 1)
		if c.IsWorkingDay(day) {
			counted++
		}
	}
	return day
}

// CalendarDaysFor returns how many calendar days, starting after from, it takes
// to accumulate the given (possibly fractional) number of working days.
// Weekends and holidays cost a whole calendar day each; a working day
// contributes up to one working day.
func (c *HolidayCalendar) CalendarDaysFor(from time.Time, workingDays float64) float64 {
	const epsilon = 1e-9
	if math.IsNaN(workingDays) || math.IsInf(workingDays, 0) {
		return 0
	}

	remaining := workingDays
	calendarDays := 0.0
	day := DateOf(from)
	for remaining > epsilon {
		day = day.AddDate(0, 0, 1)
		if !c.IsWorkingDay(day) {
			calendarDays++
			continue
		}
		take := math.Min(1, remaining)
		calendarDays += take
		remaining -= take
	}
	return calendarDays
}

// WorkingDaysBetween counts working days in the inclusive range [from, to].
// A reversed range has none.
func (c *HolidayCalendar) WorkingDaysBetween(from, to time.Time) int {
	count := 0
	end := DateOf(to)
	for day := DateOf(from); !day.After(end); day = day.AddDate(0, 0, 1) {
		if c.IsWorkingDay(day) {
			count++
		}
	}
	return count
}
