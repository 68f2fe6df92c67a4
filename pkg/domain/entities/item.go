package entities

import "fmt"

// PartNumber represents a unique part identifier
type PartNumber string

// LotSizeRule represents the lot sizing rule for an item
type LotSizeRule int

const (
	LotForLot LotSizeRule = iota
	MinimumQty
	StandardPack
)

// String method for LotSizeRule enum
func (l LotSizeRule) String() string {
	switch l {
	case LotForLot:
		return "LotForLot"
	case MinimumQty:
		return "MinimumQty"
	case StandardPack:
		return "StandardPack"
	default:
		return "Unknown"
	}
}

// Item represents a stocked item with its replenishment parameters.
// WorkingDaysPerYear of zero means the planner default applies.
type Item struct {
	PartNumber          PartNumber
	Description         string
	UnitOfMeasure       string
	AnnualConsumption   float64
	CurrentStock        float64
	LeadTimeDays        int
	SafetyStock         float64
	MinOrderQty         float64
	LotSizeRule         LotSizeRule
	LotSize             float64
	TurnoverCoefficient float64
	WorkingDaysPerYear  int
}

// NewItem creates a validated Item carrying master data only; consumption and
// stock figures are assigned by the caller.
func NewItem(
	partNumber PartNumber,
	description string,
	leadTimeDays int,
	lotSizeRule LotSizeRule,
	minOrderQty float64,
	lotSize float64,
	safetyStock float64,
	unitOfMeasure string,
) (*Item, error) {
	item := &Item{
		PartNumber:    partNumber,
		Description:   description,
		LeadTimeDays:  leadTimeDays,
		LotSizeRule:   lotSizeRule,
		MinOrderQty:   minOrderQty,
		LotSize:       lotSize,
		SafetyStock:   safetyStock,
		UnitOfMeasure: unitOfMeasure,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the item master data
func (i *Item) Validate() error {
	if string(i.PartNumber) == "" {
		return fmt.Errorf("part number cannot be empty")
	}
	if i.LeadTimeDays < 0 {
		return fmt.Errorf("lead time cannot be negative, got %d", i.LeadTimeDays)
	}
	if i.MinOrderQty < 0 {
		return fmt.Errorf("minimum order quantity cannot be negative, got %g", i.MinOrderQty)
	}
	if i.SafetyStock < 0 {
		return fmt.Errorf("safety stock cannot be negative, got %g", i.SafetyStock)
	}
	if i.LotSize < 0 {
		return fmt.Errorf("lot size cannot be negative, got %g", i.LotSize)
	}
	if i.UnitOfMeasure == "" {
		return fmt.Errorf("unit of measure cannot be empty")
	}
	if i.LotSizeRule == MinimumQty && i.MinOrderQty == 0 {
		return fmt.Errorf("lot sizing rule MinimumQty requires non-zero minimum order quantity")
	}
	if i.LotSizeRule == StandardPack && i.LotSize == 0 {
		return fmt.Errorf("lot sizing rule StandardPack requires non-zero lot size")
	}
	if i.AnnualConsumption < 0 {
		return fmt.Errorf("annual consumption cannot be negative, got %g", i.AnnualConsumption)
	}
	if i.TurnoverCoefficient < 0 {
		return fmt.Errorf("turnover coefficient cannot be negative, got %g", i.TurnoverCoefficient)
	}
	if i.WorkingDaysPerYear < 0 {
		return fmt.Errorf("working days per year cannot be negative, got %d", i.WorkingDaysPerYear)
	}
	return nil
}

// PackSize returns the lot multiple orders are rounded up to, or 0 when the
// rule does not round.
func (i *Item) PackSize() float64 {
	if i.LotSizeRule == StandardPack {
		return i.LotSize
	}
	return 0
}
