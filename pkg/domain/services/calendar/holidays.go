// Package calendar holds the shop's business calendar: the fixed holiday
// table, the Easter-derived movable holidays and working-day arithmetic.
package calendar

import (
	"sort"
	"sync"
	"time"
)

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

var fixedHolidays = []fixedHoliday{
	{time.January, 1, "Nova godina"},
	{time.January, 6, "Bogojavljenje"},
	{time.May, 1, "Praznik rada"},
	{time.May, 30, "Dan državnosti"},
	{time.June, 22, "Dan antifašističke borbe"},
	{time.August, 5, "Dan pobjede i domovinske zahvalnosti"},
	{time.August, 15, "Velika Gospa"},
	{time.November, 1, "Svi sveti"},
	{time.November, 18, "Dan sjećanja na žrtve Domovinskog rata"},
	{time.December, 25, "Božić"},
	{time.December, 26, "Sveti Stjepan"},
}

// Movable holidays as day offsets from Easter Sunday
var movableHolidays = []struct {
	offset int
	name   string
}{
	{1, "Uskrsni ponedjeljak"},
	{60, "Tijelovo"},
}

// Holiday is a single non-working date
type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// HolidaySet is an immutable set of holiday dates. Membership is by calendar
// date in the location of the queried time.
type HolidaySet struct {
	dates map[civilDate]string
}

// Contains reports whether t falls on a holiday
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s.dates[keyOf(t)]
	return ok
}

// Len returns the number of distinct holiday dates
func (s HolidaySet) Len() int {
	return len(s.dates)
}

// Holidays returns the set's dates in chronological order
func (s HolidaySet) Holidays() []Holiday {
	out := make([]Holiday, 0, len(s.dates))
	for k, name := range s.dates {
		out = append(out, Holiday{
			Date: time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC),
			Name: name,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// HolidayCalendar computes holiday sets per year and memoizes them for its
// lifetime. Holiday rules never change, so cached sets never expire.
type HolidayCalendar struct {
	mu    sync.RWMutex
	cache map[int]HolidaySet
}

// New creates an empty HolidayCalendar
func New() *HolidayCalendar {
	return &HolidayCalendar{
		cache: make(map[int]HolidaySet),
	}
}

// HolidaysFor returns the holiday set for a year, computing it on first use.
// Two callers racing on a cold year both compute; the sets are identical so
// whichever write lands last is kept.
func (c *HolidayCalendar) HolidaysFor(year int) HolidaySet {
	c.mu.RLock()
	set, ok := c.cache[year]
	c.mu.RUnlock()
	if ok {
		return set
	}

	set = computeHolidays(year)

	c.mu.Lock()
	c.cache[year] = set
	c.mu.Unlock()
	return set
}

// HolidaysBetween returns the union of the holiday sets of every year from
// from.Year() to to.Year() inclusive
func (c *HolidayCalendar) HolidaysBetween(from, to time.Time) HolidaySet {
	union := HolidaySet{dates: make(map[civilDate]string)}
	for year := from.Year(); year <= to.Year(); year++ {
		for k, name := range c.HolidaysFor(year).dates {
			union.dates[k] = name
		}
	}
	return union
}

// IsHoliday reports whether t falls on a holiday
func (c *HolidayCalendar) IsHoliday(t time.Time) bool {
	return c.HolidaysFor(t.Year()).Contains(t)
}

// IsWorkingDay reports whether t is a weekday that is not a holiday
func (c *HolidayCalendar) IsWorkingDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	return !c.IsHoliday(t)
}

// IsWeekend reports whether t falls on a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func computeHolidays(year int) HolidaySet {
	set := HolidaySet{dates: make(map[civilDate]string, len(fixedHolidays)+len(movableHolidays))}
	for _, h := range fixedHolidays {
		set.dates[civilDate{year, h.month, h.day}] = h.name
	}

	easter := EasterSunday(year)
	for _, h := range movableHolidays {
		k := keyOf(easter.AddDate(0, 0, h.offset))
		// a movable feast landing on a fixed holiday keeps the fixed name
		if _, taken := set.dates[k]; !taken {
			set.dates[k] = h.name
		}
	}
	return set
}

// EasterSunday returns the Gregorian Easter Sunday of the given year using the
// Meeus/Jones/Butcher algorithm. All divisions truncate.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
