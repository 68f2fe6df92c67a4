package replenishment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/shopplan/pkg/domain/entities"
)

var today = time.Date(2024, 6, 13, 9, 30, 0, 0, time.UTC)

func newPlanner(opts ...Option) *Planner {
	opts = append([]Option{WithClock(func() time.Time { return today })}, opts...)
	return NewPlanner(DefaultConfig(), opts...)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseItem() entities.Item {
	return entities.Item{
		PartNumber:        "PLOCA-18",
		Description:       "Iverica 18 mm",
		UnitOfMeasure:     "kom",
		AnnualConsumption: 3650,
		CurrentStock:      100,
		LeadTimeDays:      5,
		SafetyStock:       20,
	}
}

func TestPlan_NotYetDue(t *testing.T) {
	plan := newPlanner().Plan(baseItem())

	assert.InDelta(t, 10, plan.DailyUsage, 1e-9)
	assert.InDelta(t, 70, plan.ReorderPoint, 1e-9)
	assert.InDelta(t, 300, plan.TargetCycleStock, 1e-9)
	assert.InDelta(t, 320, plan.TargetMaxLevel, 1e-9)
	assert.False(t, plan.OrderNow)
	require.NotNil(t, plan.DaysUntilOrder)
	assert.Equal(t, 3, *plan.DaysUntilOrder)
	assert.Equal(t, day(2024, 6, 16), *plan.PlannedOrderDate)
	assert.Equal(t, day(2024, 6, 21), *plan.ExpectedArrival)
	assert.InDelta(t, 220, plan.RecommendedQuantity, 1e-9)
	assert.InDelta(t, 3650.0/170.0, plan.EstimatedTurnover, 1e-9)
}

func TestPlan_OrderNowAtOrBelowReorderPoint(t *testing.T) {
	p := newPlanner()

	for _, stock := range []float64{70, 69.5, 0} {
		item := baseItem()
		item.CurrentStock = stock

		plan := p.Plan(item)
		assert.True(t, plan.OrderNow, "stock %g", stock)
		require.NotNil(t, plan.DaysUntilOrder)
		assert.Zero(t, *plan.DaysUntilOrder)
		assert.Equal(t, day(2024, 6, 13), *plan.PlannedOrderDate)
		assert.Equal(t, day(2024, 6, 18), *plan.ExpectedArrival)
		assert.InDelta(t, 320-stock, plan.RecommendedQuantity, 1e-9)
	}
}

func TestPlan_TodayFollowsShopLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	lateEvening := time.Date(2024, 6, 13, 23, 30, 0, 0, time.UTC)

	item := baseItem()
	item.CurrentStock = 0

	plan := NewPlanner(DefaultConfig(),
		WithClock(func() time.Time { return lateEvening }),
		WithLocation(tokyo)).Plan(item)
	require.True(t, plan.OrderNow)
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, tokyo), *plan.PlannedOrderDate)
	assert.Equal(t, time.Date(2024, 6, 19, 0, 0, 0, 0, tokyo), *plan.ExpectedArrival)

	plan = NewPlanner(DefaultConfig(),
		WithClock(func() time.Time { return lateEvening })).Plan(item)
	assert.Equal(t, day(2024, 6, 13), *plan.PlannedOrderDate)
}

func TestPlan_ZeroConsumptionNeverOrders(t *testing.T) {
	p := newPlanner()

	for _, item := range []entities.Item{
		{PartNumber: "A", SafetyStock: 15},
		{PartNumber: "B", SafetyStock: 15, CurrentStock: 0, LeadTimeDays: 30, MinOrderQty: 100},
		{PartNumber: "C", AnnualConsumption: -5, TurnoverCoefficient: 12},
	} {
		plan := p.Plan(item)
		assert.False(t, plan.OrderNow, "%s", item.PartNumber)
		assert.Zero(t, plan.RecommendedQuantity, "%s", item.PartNumber)
		assert.True(t, plan.NeverOrder(), "%s", item.PartNumber)
		assert.Nil(t, plan.PlannedOrderDate)
		assert.Nil(t, plan.ExpectedArrival)
		assert.Equal(t, item.SafetyStock, plan.ReorderPoint)
		assert.Equal(t, item.SafetyStock, plan.TargetMaxLevel)
		assert.Zero(t, plan.DailyUsage)
	}
}

func TestPlan_TurnoverCoefficientSetsInterval(t *testing.T) {
	item := baseItem()
	item.TurnoverCoefficient = 73 // five day cycle

	plan := newPlanner().Plan(item)
	assert.InDelta(t, 50, plan.TargetCycleStock, 1e-9)
	assert.InDelta(t, 70, plan.TargetMaxLevel, 1e-9)
	assert.Zero(t, plan.RecommendedQuantity)
}

func TestPlan_WorkingDaysPerYear(t *testing.T) {
	item := baseItem()
	item.AnnualConsumption = 2500
	item.WorkingDaysPerYear = 250
	assert.InDelta(t, 10, newPlanner().Plan(item).DailyUsage, 1e-9)

	p := NewPlanner(Config{WorkingDaysPerYear: 250}, WithClock(func() time.Time { return today }))
	item.WorkingDaysPerYear = 0
	assert.InDelta(t, 10, p.Plan(item).DailyUsage, 1e-9)
}

func TestPlan_MinimumAndPackRounding(t *testing.T) {
	p := newPlanner()

	item := baseItem()
	item.LotSizeRule = entities.StandardPack
	item.LotSize = 50
	assert.InDelta(t, 250, p.Plan(item).RecommendedQuantity, 1e-9)

	item.MinOrderQty = 300
	assert.InDelta(t, 300, p.Plan(item).RecommendedQuantity, 1e-9)

	item = baseItem()
	item.LotSizeRule = entities.MinimumQty
	item.MinOrderQty = 500
	item.LotSize = 40 // ignored outside StandardPack
	assert.InDelta(t, 500, p.Plan(item).RecommendedQuantity, 1e-9)
}

func TestPlan_LevelsNeverBelowSafetyStock(t *testing.T) {
	p := newPlanner()

	for _, annual := range []float64{0, 0.001, 1, 365, 100000} {
		item := baseItem()
		item.AnnualConsumption = annual
		plan := p.Plan(item)
		assert.GreaterOrEqual(t, plan.ReorderPoint, item.SafetyStock)
		assert.GreaterOrEqual(t, plan.TargetMaxLevel, item.SafetyStock)
		assert.GreaterOrEqual(t, plan.RecommendedQuantity, 0.0)
	}
}

type itemSource struct {
	items []*entities.Item
	err   error
}

func (s *itemSource) GetItem(pn entities.PartNumber) (*entities.Item, error) {
	return nil, entities.ErrItemNotFound
}
func (s *itemSource) GetAllItems() ([]*entities.Item, error) { return s.items, s.err }
func (s *itemSource) LoadItems(items []*entities.Item) error { s.items = items; return nil }

func TestPlanAll(t *testing.T) {
	b := baseItem()
	a := baseItem()
	a.PartNumber = "AAA"

	plans, err := newPlanner().PlanAll(context.Background(), &itemSource{items: []*entities.Item{&b, &a}})
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, entities.PartNumber("AAA"), plans[0].PartNumber)
	assert.Equal(t, entities.PartNumber("PLOCA-18"), plans[1].PartNumber)
}

func TestPlanAll_Errors(t *testing.T) {
	_, err := newPlanner().PlanAll(context.Background(), &itemSource{err: errors.New("disk on fire")})
	assert.ErrorContains(t, err, "loading items: disk on fire")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := baseItem()
	_, err = newPlanner().PlanAll(ctx, &itemSource{items: []*entities.Item{&b}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanFromHistory(t *testing.T) {
	repo := &stubConsumption{quantity: 90, cost: 450}
	p := newPlanner(WithConsumption(repo))

	item := baseItem()
	item.AnnualConsumption = 0
	item.LeadTimeDays = 10
	item.SafetyStock = 5
	item.CurrentStock = 40
	period, err := entities.NewPeriod(day(2024, 1, 1), day(2024, 3, 31))
	require.NoError(t, err)

	plan, report, err := p.PlanFromHistory(context.Background(), item, period)
	require.NoError(t, err)
	assert.InDelta(t, 1, report.AvgDailyUsage, 1e-9)
	assert.InDelta(t, 1, plan.DailyUsage, 1e-9)
	assert.InDelta(t, 15, plan.ReorderPoint, 1e-9)
	assert.Equal(t, 25, *plan.DaysUntilOrder)
}

func TestPlanFromHistory_NoSource(t *testing.T) {
	period, _ := entities.NewPeriod(day(2024, 1, 1), day(2024, 3, 31))

	_, _, err := newPlanner().PlanFromHistory(context.Background(), baseItem(), period)
	assert.ErrorContains(t, err, "no consumption source")
}
