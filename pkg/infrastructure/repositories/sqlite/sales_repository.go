package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
)

const dateLayout = "2006-01-02"

// SalesRepo implements the sales ledger on SQLite
type SalesRepo struct {
	db *sql.DB
}

// NewSalesRepo creates a new SalesRepo
func NewSalesRepo(db *sql.DB) *SalesRepo {
	return &SalesRepo{db: db}
}

var _ repositories.SalesRepository = (*SalesRepo)(nil)

// SaveSales inserts the sales in one transaction, assigning missing IDs
func (r *SalesRepo) SaveSales(ctx context.Context, sales []*entities.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sales (id, product_code, sold_on, quantity, cost_of_goods)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing sale insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range sales {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, s.ID, s.ProductCode, s.SoldOn.Format(dateLayout), s.Quantity, s.CostOfGoods); err != nil {
			return fmt.Errorf("inserting sale %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sales: %w", err)
	}
	return nil
}

func (r *SalesRepo) ListSales(ctx context.Context, productCode string) ([]*entities.Sale, error) {
	query := `SELECT id, product_code, sold_on, quantity, cost_of_goods
		FROM sales WHERE product_code = ? ORDER BY sold_on, id`
	rows, err := r.db.QueryContext(ctx, query, productCode)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*entities.Sale
	for rows.Next() {
		var s entities.Sale
		var soldOn string
		if err := rows.Scan(&s.ID, &s.ProductCode, &soldOn, &s.Quantity, &s.CostOfGoods); err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		s.SoldOn, err = time.Parse(dateLayout, soldOn)
		if err != nil {
			return nil, fmt.Errorf("parsing sold_on %q: %w", soldOn, err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

func (r *SalesRepo) SumQuantityInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error) {
	return r.sum(ctx, "quantity", productCode, from, to)
}

func (r *SalesRepo) SumCostOfGoodsInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error) {
	return r.sum(ctx, "cost_of_goods", productCode, from, to)
}

// sum aggregates one column; column is never user input
func (r *SalesRepo) sum(ctx context.Context, column, productCode string, from, to time.Time) (float64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM sales
		WHERE product_code = ? AND sold_on BETWEEN ? AND ?`, column)

	var total float64
	err := r.db.QueryRowContext(ctx, query, productCode, from.Format(dateLayout), to.Format(dateLayout)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing sales %s: %w", column, err)
	}
	return total, nil
}
