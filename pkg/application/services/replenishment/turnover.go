package replenishment

import (
	"context"
	"fmt"
	"math"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
)

// DaysPerYear is the calendar year DIO is expressed against
const DaysPerYear = 365

// TurnoverAnalyzer derives turnover figures from consumption aggregates.
// Without stock snapshots the opening stock is approximated from current
// stock minus what was sold.
type TurnoverAnalyzer struct {
	consumption repositories.ConsumptionRepository
}

// NewTurnoverAnalyzer creates a TurnoverAnalyzer
func NewTurnoverAnalyzer(consumption repositories.ConsumptionRepository) *TurnoverAnalyzer {
	return &TurnoverAnalyzer{consumption: consumption}
}

// Turnover reports unit turnover and days-inventory-outstanding of a product
// over period. DIO is +Inf when nothing turned over.
func (a *TurnoverAnalyzer) Turnover(ctx context.Context, productCode string, period entities.Period, currentQty float64) (*entities.TurnoverReport, error) {
	if productCode == "" {
		return nil, fmt.Errorf("%w: product code cannot be empty", entities.ErrInvalidArgument)
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	sold, err := a.consumption.SumQuantityInRange(ctx, productCode, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("summing sold quantity of %s: %w", productCode, err)
	}
	cogs, err := a.consumption.SumCostOfGoodsInRange(ctx, productCode, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("summing cost of goods of %s: %w", productCode, err)
	}

	report := &entities.TurnoverReport{
		ProductCode:   productCode,
		Period:        period,
		SoldQuantity:  sold,
		CostOfGoods:   cogs,
		CurrentQty:    currentQty,
		OpeningQty:    math.Max(currentQty-sold, 0),
		AvgDailyUsage: math.Max(sold, 0) / float64(period.Days()),
		DIO:           math.Inf(1),
	}
	report.AverageStock = (report.OpeningQty + currentQty) / 2

	if report.AverageStock > 0 {
		report.Turnover = math.Max(sold/report.AverageStock, 0)
	}
	if report.Turnover > 0 {
		report.DIO = DaysPerYear / report.Turnover
	}
	return report, nil
}
