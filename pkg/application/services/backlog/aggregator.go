// Package backlog summarizes the production order backlog and forecasts when
// the pending work will be delivered.
package backlog

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
	"github.com/vsinha/shopplan/pkg/infrastructure/logging"
)

// ShiftHours converts an hourly capacity into a daily rate when no
// production history exists
const ShiftHours = 8

// MaxForecastWorkingDays bounds the forecast horizon. A rate so low that the
// pending work needs more working days than this is rejected.
const MaxForecastWorkingDays = 10000

// Aggregator computes backlog snapshots. It holds no state between calls.
type Aggregator struct {
	calendar *calendar.HolidayCalendar
	dates    *datetime.Parser
	now      func() time.Time
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithClock overrides the source of "today"
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// New creates an Aggregator
func New(cal *calendar.HolidayCalendar, dates *datetime.Parser, opts ...Option) *Aggregator {
	a := &Aggregator{
		calendar: cal,
		dates:    dates,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize aggregates the rows into completed and pending totals and
// forecasts the remaining work. Capacity is area produced per working hour
// and must be positive. Unreadable cells count as zero or, for dates, are
// left out of the production history.
func (a *Aggregator) Summarize(rows repositories.RowSource, capacityAreaPerHour float64) (*entities.BacklogSnapshot, error) {
	if !(capacityAreaPerHour > 0) || math.IsInf(capacityAreaPerHour, 1) {
		return nil, fmt.Errorf("%w: capacity must be a positive area per hour, got %g",
			entities.ErrInvalidArgument, capacityAreaPerHour)
	}

	now := a.now()
	snapshot := &entities.BacklogSnapshot{ComputedAt: now}
	produced := make(map[time.Time]decimal.Decimal)

	if rows != nil {
		columns := ResolveColumns(rows.Columns())
		for _, f := range columns.Legacy() {
			snapshot.LegacyColumns = append(snapshot.LegacyColumns, f.String())
		}
		if len(snapshot.LegacyColumns) > 0 {
			logging.Debug("backlog columns resolved by position", "fields", snapshot.LegacyColumns)
		}

		for r := 0; r < rows.Len(); r++ {
			quantity := toDecimal(columns.Value(rows, r, FieldQuantity))
			area := toDecimal(columns.Value(rows, r, FieldArea))
			netValue := toDecimal(columns.Value(rows, r, FieldNetValue))

			snapshot.Total.Add(quantity, area, netValue)
			if !isCompleted(columns.Value(rows, r, FieldStatus)) {
				snapshot.Pending.Add(quantity, area, netValue)
				continue
			}
			snapshot.Completed.Add(quantity, area, netValue)

			if !area.IsPositive() {
				continue
			}
			day, ok := a.completionDate(rows, columns, r)
			if !ok {
				continue
			}
			produced[day] = produced[day].Add(area)
		}
	}

	snapshot.ProductionDays = len(produced)
	if snapshot.ProductionDays > 0 {
		snapshot.RateSource = entities.RateFromHistory
		snapshot.DailyRate = snapshot.Completed.Area.Div(decimal.NewFromInt(int64(snapshot.ProductionDays)))
	} else {
		snapshot.RateSource = entities.RateFromCapacity
		snapshot.DailyRate = decimal.NewFromFloat(capacityAreaPerHour).Mul(decimal.NewFromInt(ShiftHours))
	}

	if err := a.forecast(snapshot, now); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// PlannedDeliveryDate returns the date on which the given number of working
// days, counted from tomorrow, is reached. Zero days is today.
func (a *Aggregator) PlannedDeliveryDate(workingDays int) time.Time {
	return a.calendar.AddWorkingDays(a.today(a.now()), workingDays)
}

// forecast never understates the remaining work: working days are ceiled to
// two decimals and the calendar span is walked from that ceiled value.
func (a *Aggregator) forecast(s *entities.BacklogSnapshot, now time.Time) error {
	today := a.today(now)
	s.PlannedDelivery = today

	pending := s.Pending.Area
	if !s.DailyRate.IsPositive() || !pending.IsPositive() {
		s.RemainingWorkingDays = decimal.Zero
		s.RemainingCalendarDays = decimal.Zero
		return nil
	}

	remaining := pending.Div(s.DailyRate).RoundCeil(2)
	if remaining.GreaterThan(decimal.NewFromInt(MaxForecastWorkingDays)) {
		return fmt.Errorf("%w: daily rate %s needs %s working days, limit is %d",
			entities.ErrInvalidArgument, s.DailyRate, remaining, MaxForecastWorkingDays)
	}
	s.RemainingWorkingDays = remaining
	s.RequiredWorkingDays = int(s.RemainingWorkingDays.Ceil().IntPart())

	calendarDays := a.calendar.CalendarDaysFor(today, s.RemainingWorkingDays.InexactFloat64())
	s.RemainingCalendarDays = decimal.NewFromFloat(calendarDays).Round(2)
	s.PlannedDelivery = a.calendar.AddWorkingDays(today, s.RequiredWorkingDays)
	return nil
}

// completionDate prefers the completion timestamp and falls back to the
// planned delivery date
func (a *Aggregator) completionDate(rows repositories.RowSource, columns ColumnMap, r int) (time.Time, bool) {
	if day, ok := a.dates.DateValue(columns.Value(rows, r, FieldCompletedAt)); ok {
		return civil(day), true
	}
	if day, ok := a.dates.DateValue(columns.Value(rows, r, FieldPlannedDate)); ok {
		return civil(day), true
	}
	return time.Time{}, false
}

func (a *Aggregator) today(now time.Time) time.Time {
	return calendar.DateOf(now.In(a.dates.Location()))
}

// civil keys production by calendar date regardless of location
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
