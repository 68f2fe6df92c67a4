package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
)

// SalesRepository is an in-memory sales ledger
type SalesRepository struct {
	mu    sync.RWMutex
	sales map[string][]*entities.Sale
}

// NewSalesRepository creates an empty ledger
func NewSalesRepository() *SalesRepository {
	return &SalesRepository{
		sales: make(map[string][]*entities.Sale),
	}
}

// Verify interface compliance
var _ repositories.SalesRepository = (*SalesRepository)(nil)

// SaveSales appends sales, assigning IDs to those without one
func (r *SalesRepository) SaveSales(ctx context.Context, sales []*entities.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range sales {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		stored := *s
		r.sales[s.ProductCode] = append(r.sales[s.ProductCode], &stored)
	}
	return nil
}

// ListSales returns the sales of one product in insertion order
func (r *SalesRepository) ListSales(ctx context.Context, productCode string) ([]*entities.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Sale, 0, len(r.sales[productCode]))
	for _, s := range r.sales[productCode] {
		sale := *s
		out = append(out, &sale)
	}
	return out, nil
}

// SumQuantityInRange sums units sold between from and to inclusive
func (r *SalesRepository) SumQuantityInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error) {
	return r.sum(productCode, from, to, func(s *entities.Sale) float64 { return s.Quantity }), nil
}

// SumCostOfGoodsInRange sums cost of goods sold between from and to inclusive
func (r *SalesRepository) SumCostOfGoodsInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error) {
	return r.sum(productCode, from, to, func(s *entities.Sale) float64 { return s.CostOfGoods }), nil
}

func (r *SalesRepository) sum(productCode string, from, to time.Time, field func(*entities.Sale) float64) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	period := entities.Period{From: from, To: to}
	total := 0.0
	for _, s := range r.sales[productCode] {
		if period.Contains(s.SoldOn) {
			total += field(s)
		}
	}
	return total
}
