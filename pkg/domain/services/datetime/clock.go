package datetime

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay reads "HH:MM" (one-digit hours accepted)
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", text)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: expected HH:MM", text)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustTimeOfDay is ParseTimeOfDay for constants; it panics on bad input
func MustTimeOfDay(text string) TimeOfDay {
	tod, err := ParseTimeOfDay(text)
	if err != nil {
		panic(err)
	}
	return tod
}

// Minutes returns minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On places the time of day on the calendar date of day, in day's location
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
