package entities

import (
	"fmt"
	"time"
)

// OrderStatus represents the production state of an order
type OrderStatus int

const (
	Pending OrderStatus = iota
	InProgress
	Completed
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case InProgress:
		return "InProgress"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ProductionOrder represents a stored production order row. The backlog
// aggregator never reads it directly; adapters expose orders as a row source.
type ProductionOrder struct {
	OrderNumber string
	Customer    string
	Product     string
	Quantity    float64
	Area        float64
	NetValue    float64
	PlannedDate time.Time
	Status      OrderStatus
	CompletedAt *time.Time
}

// NewProductionOrder creates a validated ProductionOrder
func NewProductionOrder(
	orderNumber, customer, product string,
	quantity, area, netValue float64,
	plannedDate time.Time,
	status OrderStatus,
	completedAt *time.Time,
) (*ProductionOrder, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("order number cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %g", quantity)
	}
	if area < 0 {
		return nil, fmt.Errorf("area cannot be negative, got %g", area)
	}
	if completedAt != nil && status != Completed {
		return nil, fmt.Errorf("order %s has a completion time but status %s", orderNumber, status)
	}

	return &ProductionOrder{
		OrderNumber: orderNumber,
		Customer:    customer,
		Product:     product,
		Quantity:    quantity,
		Area:        area,
		NetValue:    netValue,
		PlannedDate: plannedDate,
		Status:      status,
		CompletedAt: completedAt,
	}, nil
}
