package entities

import (
	"fmt"
	"time"
)

// Sale represents one consumption record: units of a product issued on a date
// and their cost of goods sold
type Sale struct {
	ID          string    `json:"id"`
	ProductCode string    `json:"product_code"`
	SoldOn      time.Time `json:"sold_on"`
	Quantity    float64   `json:"quantity"`
	CostOfGoods float64   `json:"cost_of_goods"`
}

// NewSale creates a validated Sale; the ID is assigned by the store
func NewSale(productCode string, soldOn time.Time, quantity, costOfGoods float64) (*Sale, error) {
	if productCode == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	if soldOn.IsZero() {
		return nil, fmt.Errorf("sale date cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %g", quantity)
	}
	if costOfGoods < 0 {
		return nil, fmt.Errorf("cost of goods cannot be negative, got %g", costOfGoods)
	}

	return &Sale{
		ProductCode: productCode,
		SoldOn:      soldOn,
		Quantity:    quantity,
		CostOfGoods: costOfGoods,
	}, nil
}
