package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource tells where a backlog's daily throughput came from
type RateSource int

const (
	RateFromHistory RateSource = iota
	RateFromCapacity
)

// String method for RateSource enum
func (r RateSource) String() string {
	switch r {
	case RateFromHistory:
		return "history"
	case RateFromCapacity:
		return "capacity"
	default:
		return "unknown"
	}
}

// MarshalText keeps the JSON form readable
func (r RateSource) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// BacklogTotals aggregates quantity, area and net value for one class of rows
type BacklogTotals struct {
	Quantity decimal.Decimal `json:"quantity"`
	Area     decimal.Decimal `json:"area"`
	NetValue decimal.Decimal `json:"net_value"`
}

// Add accumulates a row into the totals
func (t *BacklogTotals) Add(quantity, area, netValue decimal.Decimal) {
	t.Quantity = t.Quantity.Add(quantity)
	t.Area = t.Area.Add(area)
	t.NetValue = t.NetValue.Add(netValue)
}

// BacklogSnapshot is a freshly computed summary of the production backlog
type BacklogSnapshot struct {
	Total     BacklogTotals `json:"total"`
	Completed BacklogTotals `json:"completed"`
	Pending   BacklogTotals `json:"pending"`

	DailyRate      decimal.Decimal `json:"daily_rate"`
	RateSource     RateSource      `json:"rate_source"`
	ProductionDays int             `json:"production_days"`

	RemainingWorkingDays  decimal.Decimal `json:"remaining_working_days"`
	RequiredWorkingDays   int             `json:"required_working_days"`
	RemainingCalendarDays decimal.Decimal `json:"remaining_calendar_days"`
	PlannedDelivery       time.Time       `json:"planned_delivery"`

	// LegacyColumns lists the fields resolved by fixed position rather than by name
	LegacyColumns []string  `json:"legacy_columns,omitempty"`
	ComputedAt    time.Time `json:"computed_at"`
}
