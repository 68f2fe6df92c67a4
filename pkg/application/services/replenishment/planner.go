// Package replenishment plans stock reorders from an annual consumption
// model and measures inventory turnover from sales history.
package replenishment

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
)

const (
	DefaultWorkingDaysPerYear = 365
	DefaultOrderIntervalDays  = 30
)

// Config holds the fallbacks used when an item leaves a parameter unset
type Config struct {
	WorkingDaysPerYear int
	OrderIntervalDays  float64
}

// DefaultConfig returns the planner defaults
func DefaultConfig() Config {
	return Config{
		WorkingDaysPerYear: DefaultWorkingDaysPerYear,
		OrderIntervalDays:  DefaultOrderIntervalDays,
	}
}

// Planner computes replenishment plans
type Planner struct {
	config      Config
	now         func() time.Time
	loc         *time.Location
	consumption repositories.ConsumptionRepository
}

// Option configures a Planner
type Option func(*Planner)

// WithClock overrides the source of "today"
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// WithLocation sets the shop time zone used to decide which day is today
func WithLocation(loc *time.Location) Option {
	return func(p *Planner) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithConsumption supplies the sales aggregates PlanFromHistory reads
func WithConsumption(repo repositories.ConsumptionRepository) Option {
	return func(p *Planner) {
		p.consumption = repo
	}
}

// NewPlanner creates a Planner; zero config values take the defaults
func NewPlanner(config Config, opts ...Option) *Planner {
	if config.WorkingDaysPerYear <= 0 {
		config.WorkingDaysPerYear = DefaultWorkingDaysPerYear
	}
	if config.OrderIntervalDays <= 0 {
		config.OrderIntervalDays = DefaultOrderIntervalDays
	}

	p := &Planner{
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan computes the reorder recommendation for one item
func (p *Planner) Plan(item entities.Item) entities.ReplenishmentPlan {
	plan := entities.ReplenishmentPlan{
		PartNumber:   item.PartNumber,
		Description:  item.Description,
		CurrentStock: item.CurrentStock,
	}

	if !(item.AnnualConsumption > 0) {
		plan.ReorderPoint = item.SafetyStock
		plan.TargetMaxLevel = item.SafetyStock
		return plan
	}

	workingDays := float64(p.workingDaysPerYear(item))
	daily := math.Max(item.AnnualConsumption/workingDays, 0)

	interval := p.config.OrderIntervalDays
	if item.TurnoverCoefficient > 0 {
		interval = workingDays / item.TurnoverCoefficient
	}

	plan.DailyUsage = daily
	plan.ReorderPoint = item.SafetyStock + daily*float64(item.LeadTimeDays)
	plan.TargetCycleStock = daily * interval
	plan.TargetMaxLevel = item.SafetyStock + plan.TargetCycleStock
	plan.OrderNow = item.CurrentStock <= plan.ReorderPoint+epsilon

	days := 0
	if !plan.OrderNow && daily > 0 {
		days = int(math.Max(math.Ceil((item.CurrentStock-plan.ReorderPoint)/daily-epsilon), 0))
	}
	plan.DaysUntilOrder = &days

	orderDate := calendar.DateOf(p.today()).AddDate(0, 0, days)
	arrival := orderDate.AddDate(0, 0, item.LeadTimeDays)
	plan.PlannedOrderDate = &orderDate
	plan.ExpectedArrival = &arrival

	plan.RecommendedQuantity = RecommendOrderQuantity(item.CurrentStock, plan.TargetMaxLevel, item.MinOrderQty, item.PackSize())

	if avg := (item.SafetyStock + plan.TargetMaxLevel) / 2; avg > 0 {
		plan.EstimatedTurnover = item.AnnualConsumption / avg
	}
	return plan
}

func (p *Planner) today() time.Time {
	now := p.now()
	if p.loc != nil {
		now = now.In(p.loc)
	}
	return now
}

// PlanAll plans every item in the repository, ordered by part number
func (p *Planner) PlanAll(ctx context.Context, items repositories.ItemRepository) ([]entities.ReplenishmentPlan, error) {
	all, err := items.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	plans := make([]entities.ReplenishmentPlan, 0, len(all))
	for _, item := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plans = append(plans, p.Plan(*item))
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].PartNumber < plans[j].PartNumber
	})
	return plans, nil
}

// PlanFromHistory replaces the item's annual consumption with the average
// daily usage observed over period, scaled to a working year, and plans with
// that. The item's current stock is the closing stock of the period.
func (p *Planner) PlanFromHistory(ctx context.Context, item entities.Item, period entities.Period) (entities.ReplenishmentPlan, *entities.TurnoverReport, error) {
	if p.consumption == nil {
		return entities.ReplenishmentPlan{}, nil, fmt.Errorf("planning %s from history: no consumption source configured", item.PartNumber)
	}

	report, err := NewTurnoverAnalyzer(p.consumption).Turnover(ctx, string(item.PartNumber), period, item.CurrentStock)
	if err != nil {
		return entities.ReplenishmentPlan{}, nil, err
	}

	item.AnnualConsumption = report.AvgDailyUsage * float64(p.workingDaysPerYear(item))
	return p.Plan(item), report, nil
}

func (p *Planner) workingDaysPerYear(item entities.Item) int {
	if item.WorkingDaysPerYear > 0 {
		return item.WorkingDaysPerYear
	}
	return p.config.WorkingDaysPerYear
}
