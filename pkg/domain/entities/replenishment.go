package entities

import (
	"math"
	"time"
)

// ReplenishmentPlan is the reorder recommendation for one item. A nil
// DaysUntilOrder means the item never needs ordering at current usage.
type ReplenishmentPlan struct {
	PartNumber          PartNumber `json:"part_number"`
	Description         string     `json:"description"`
	DailyUsage          float64    `json:"daily_usage"`
	ReorderPoint        float64    `json:"reorder_point"`
	TargetCycleStock    float64    `json:"target_cycle_stock"`
	TargetMaxLevel      float64    `json:"target_max_level"`
	CurrentStock        float64    `json:"current_stock"`
	OrderNow            bool       `json:"order_now"`
	DaysUntilOrder      *int       `json:"days_until_order"`
	RecommendedQuantity float64    `json:"recommended_quantity"`
	PlannedOrderDate    *time.Time `json:"planned_order_date"`
	ExpectedArrival     *time.Time `json:"expected_arrival"`
	EstimatedTurnover   float64    `json:"estimated_turnover"`
}

// NeverOrder reports whether the plan has no order date
func (p ReplenishmentPlan) NeverOrder() bool {
	return p.DaysUntilOrder == nil
}

// TurnoverReport is the usage-history view of one product over a period.
// DIO is +Inf when nothing turned over; the value-based figures are never
// computed because no stock value history exists.
type TurnoverReport struct {
	ProductCode   string  `json:"product_code"`
	Period        Period  `json:"-"`
	SoldQuantity  float64 `json:"sold_quantity"`
	CostOfGoods   float64 `json:"cost_of_goods"`
	OpeningQty    float64 `json:"opening_qty"`
	CurrentQty    float64 `json:"current_qty"`
	AverageStock  float64 `json:"average_stock"`
	AvgDailyUsage float64 `json:"avg_daily_usage"`
	Turnover      float64 `json:"turnover"`
	DIO           float64 `json:"-"`

	ValueTurnover *float64 `json:"value_turnover"`
	ValueDIO      *float64 `json:"value_dio"`
}

// DIOInfinite reports whether days-inventory-outstanding is unbounded
func (r TurnoverReport) DIOInfinite() bool {
	return math.IsInf(r.DIO, 1)
}
