package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
)

func newCalculator(t *testing.T, opts ...Option) *Calculator {
	t.Helper()
	c, err := New(calendar.New(), datetime.NewParser(time.UTC), opts...)
	require.NoError(t, err)
	return c
}

func TestCompute(t *testing.T) {
	c := newCalculator(t)

	cases := []struct {
		name       string
		start, end string
		want       entities.WorkingDuration
	}{
		{"overnight thursday to friday", "13.06.2024 14:00", "14.06.2024 10:00", entities.WorkingDuration{Hours: 4}},
		{"friday into saturday", "14.06.2024 14:00", "15.06.2024 10:00", entities.WorkingDuration{Hours: 1}},
		{"within one day", "13.06.2024 08:15", "13.06.2024 09:00", entities.WorkingDuration{Minutes: 45}},
		{"three days with partial ends", "10.06.2024 09:30", "12.06.2024 11:15", entities.WorkingDuration{Hours: 17, Minutes: 45}},
		{"across a weekend", "14.06.2024 06:00", "17.06.2024 16:00", entities.WorkingDuration{Hours: 16}},
		{"skips statehood day", "29.05.2024 08:00", "31.05.2024 08:00", entities.WorkingDuration{Hours: 8}},
		{"across new year", "31.12.2024 13:00", "02.01.2025 08:00", entities.WorkingDuration{Hours: 3}},
		{"same saturday", "15.06.2024 08:00", "15.06.2024 12:00", entities.WorkingDuration{}},
		{"after the shift", "13.06.2024 16:00", "13.06.2024 18:00", entities.WorkingDuration{}},
		{"end equals start", "13.06.2024 10:00", "13.06.2024 10:00", entities.WorkingDuration{}},
		{"end before start", "14.06.2024 10:00", "13.06.2024 14:00", entities.WorkingDuration{}},
		{"fallback layouts", "13.06.24 14:00", "14.06.2024. 10:00", entities.WorkingDuration{Hours: 4}},
		{"unparseable start", "yesterday", "14.06.2024 10:00", entities.WorkingDuration{}},
		{"empty end", "13.06.2024 14:00", "", entities.WorkingDuration{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Compute(tc.start, tc.end))
		})
	}
}

func TestWorkingDuration_Phrase(t *testing.T) {
	c := newCalculator(t)

	assert.Equal(t, "sat 4 minuta 0", c.WorkingDuration("13.06.2024 14:00", "14.06.2024 10:00"))
	assert.Equal(t, "sat 0 minuta 0", c.WorkingDuration("garbage", "14.06.2024 10:00"))
}

func TestWorkingDuration_CustomPhrase(t *testing.T) {
	c := newCalculator(t, WithPhrase("%dh %02dm"))

	assert.Equal(t, "0h 45m", c.WorkingDuration("13.06.2024 08:15", "13.06.2024 09:00"))
}

func TestBetween_FullWeekIsForty(t *testing.T) {
	c := newCalculator(t)

	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 40*60, c.Between(start, end).TotalMinutes())
}

func TestBetween_CustomWindow(t *testing.T) {
	c := newCalculator(t, WithWorkingWindow(datetime.MustTimeOfDay("08:00"), datetime.MustTimeOfDay("16:30")))

	start := time.Date(2024, 6, 13, 7, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 13, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, entities.WorkingDuration{Hours: 8, Minutes: 30}, c.Between(start, end))

	ws, we := c.Window()
	assert.Equal(t, "08:00", ws.String())
	assert.Equal(t, "16:30", we.String())
}

func TestBetween_EndInOtherLocation(t *testing.T) {
	c := newCalculator(t)
	cet := time.FixedZone("CET", 3600)

	start := time.Date(2024, 6, 13, 9, 0, 0, 0, cet)
	end := time.Date(2024, 6, 13, 10, 0, 0, 0, time.UTC) // 11:00 CET
	assert.Equal(t, entities.WorkingDuration{Hours: 2}, c.Between(start, end))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, datetime.NewParser(time.UTC))
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = New(calendar.New(), nil)
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = New(calendar.New(), datetime.NewParser(time.UTC),
		WithWorkingWindow(datetime.MustTimeOfDay("15:00"), datetime.MustTimeOfDay("07:00")))
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "15:00-07:00")
}
