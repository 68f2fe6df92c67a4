package entities

import "fmt"

// DurationPhrase is the display template downstream consumers expect
// ("hour X minute Y").
const DurationPhrase = "sat %d minuta %d"

// WorkingDuration is elapsed working time split into whole hours and the
// remaining minutes
type WorkingDuration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// NewWorkingDuration splits a minute total; negative totals collapse to zero
func NewWorkingDuration(totalMinutes int) WorkingDuration {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return WorkingDuration{
		Hours:   totalMinutes / 60,
		Minutes: totalMinutes % 60,
	}
}

// TotalMinutes returns the duration as a single minute count
func (d WorkingDuration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// IsZero reports whether no working time accrued
func (d WorkingDuration) IsZero() bool {
	return d.Hours == 0 && d.Minutes == 0
}

// Render formats the duration with a two-slot template (hours, minutes)
func (d WorkingDuration) Render(template string) string {
	return fmt.Sprintf(template, d.Hours, d.Minutes)
}

// String renders the duration with DurationPhrase
func (d WorkingDuration) String() string {
	return d.Render(DurationPhrase)
}
