package repositories

import (
	"context"
	"time"

	"github.com/vsinha/shopplan/pkg/domain/entities"
)

// ConsumptionRepository provides sold-quantity and cost-of-goods aggregates
// over an inclusive date range. Both sums are 0 when no rows match.
type ConsumptionRepository interface {
	SumQuantityInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error)
	SumCostOfGoodsInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error)
}

// SalesRepository stores the sales ledger the aggregates are computed from
type SalesRepository interface {
	ConsumptionRepository
	SaveSales(ctx context.Context, sales []*entities.Sale) error
	ListSales(ctx context.Context, productCode string) ([]*entities.Sale, error)
}
