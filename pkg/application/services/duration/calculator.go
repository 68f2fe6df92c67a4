// Package duration measures elapsed working time between two timestamps,
// counting only the daily working window on weekdays that are not holidays.
package duration

import (
	"fmt"
	"time"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
)

var (
	DefaultWindowStart = datetime.TimeOfDay{Hour: 7}
	DefaultWindowEnd   = datetime.TimeOfDay{Hour: 15}
)

// Calculator computes working durations against a holiday calendar
type Calculator struct {
	calendar    *calendar.HolidayCalendar
	parser      *datetime.Parser
	windowStart datetime.TimeOfDay
	windowEnd   datetime.TimeOfDay
	phrase      string
}

// Option configures a Calculator
type Option func(*Calculator)

// WithWorkingWindow sets the daily span during which time accrues
func WithWorkingWindow(start, end datetime.TimeOfDay) Option {
	return func(c *Calculator) {
		c.windowStart = start
		c.windowEnd = end
	}
}

// WithPhrase replaces the hours/minutes rendering template
func WithPhrase(template string) Option {
	return func(c *Calculator) {
		c.phrase = template
	}
}

// New creates a Calculator with the 07:00-15:00 window unless overridden
func New(cal *calendar.HolidayCalendar, parser *datetime.Parser, opts ...Option) (*Calculator, error) {
	if cal == nil {
		return nil, fmt.Errorf("%w: holiday calendar is required", entities.ErrInvalidArgument)
	}
	if parser == nil {
		return nil, fmt.Errorf("%w: date parser is required", entities.ErrInvalidArgument)
	}

	c := &Calculator{
		calendar:    cal,
		parser:      parser,
		windowStart: DefaultWindowStart,
		windowEnd:   DefaultWindowEnd,
		phrase:      entities.DurationPhrase,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.windowEnd.Minutes() <= c.windowStart.Minutes() {
		return nil, fmt.Errorf("%w: working window %s-%s ends before it starts",
			entities.ErrInvalidArgument, c.windowStart, c.windowEnd)
	}
	return c, nil
}

// Between returns the working time from start to end. It is zero when end
// is not after start.
func (c *Calculator) Between(start, end time.Time) entities.WorkingDuration {
	if !end.After(start) {
		return entities.WorkingDuration{}
	}

	end = end.In(start.Location())
	holidays := c.calendar.HolidaysBetween(start, end)
	last := calendar.DateOf(end)

	var total time.Duration
	for day := calendar.DateOf(start); !day.After(last); day = day.AddDate(0, 0, 1) {
		if calendar.IsWeekend(day) || holidays.Contains(day) {
			continue
		}

		from := latest(start, c.windowStart.On(day))
		to := earliest(end, c.windowEnd.On(day))
		if to.After(from) {
			total += to.Sub(from)
		}
	}

	return entities.NewWorkingDuration(int(total / time.Minute))
}

// Compute normalizes and parses both texts and returns the working time
// between them, or zero if either does not parse
func (c *Calculator) Compute(startText, endText string) entities.WorkingDuration {
	startNorm := c.parser.Normalize(startText)
	endNorm := c.parser.Normalize(endText)
	if startNorm == "" || endNorm == "" {
		return entities.WorkingDuration{}
	}

	start, ok := c.parser.Parse(startNorm)
	if !ok {
		return entities.WorkingDuration{}
	}
	end, ok := c.parser.Parse(endNorm)
	if !ok {
		return entities.WorkingDuration{}
	}
	return c.Between(start, end)
}

// WorkingDuration renders Compute with the calculator's phrase template
func (c *Calculator) WorkingDuration(startText, endText string) string {
	return c.Compute(startText, endText).Render(c.phrase)
}

// Phrase returns the rendering template used by WorkingDuration
func (c *Calculator) Phrase() string {
	return c.phrase
}

// Window returns the configured daily working window
func (c *Calculator) Window() (start, end datetime.TimeOfDay) {
	return c.windowStart, c.windowEnd
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
