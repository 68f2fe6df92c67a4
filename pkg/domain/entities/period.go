package entities

import (
	"fmt"
	"math"
	"time"
)

// Period is an inclusive date range used for consumption aggregates
type Period struct {
	From time.Time
	To   time.Time
}

// NewPeriod creates a validated Period
func NewPeriod(from, to time.Time) (Period, error) {
	p := Period{From: from, To: to}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate rejects missing bounds and ranges that end before they start
func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() {
		return fmt.Errorf("%w: period bounds must be set", ErrInvalidArgument)
	}
	if dateOnly(p.To).Before(dateOnly(p.From)) {
		return fmt.Errorf("%w: period end %s is before start %s",
			ErrInvalidArgument, p.To.Format("2006-01-02"), p.From.Format("2006-01-02"))
	}
	return nil
}

// Contains reports whether the calendar date of t lies within the period.
// A reversed period contains nothing.
func (p Period) Contains(t time.Time) bool {
	from, to := dateOnly(p.From), dateOnly(p.To)
	if from.After(to) {
		return false
	}
	d := dateOnly(t)
	return !d.Before(from) && !d.After(to)
}

// Days returns the number of days between the bounds, floored at 1
func (p Period) Days() int {
	days := int(math.Round(dateOnly(p.To).Sub(dateOnly(p.From)).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
