// Package postgres keeps the sales ledger in a shared Postgres database.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
)

const schema = `CREATE TABLE IF NOT EXISTS sales (
	id            TEXT PRIMARY KEY,
	product_code  TEXT NOT NULL,
	sold_on       DATE NOT NULL,
	quantity      DOUBLE PRECISION NOT NULL DEFAULT 0,
	cost_of_goods DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales(product_code, sold_on);`

// Connect opens a pool for the given DATABASE_URL and creates the sales table
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create sales table: %w", err)
	}
	return pool, nil
}

// SalesRepo implements the sales ledger on Postgres
type SalesRepo struct {
	pool *pgxpool.Pool
}

// NewSalesRepo creates a new SalesRepo
func NewSalesRepo(pool *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{pool: pool}
}

var _ repositories.SalesRepository = (*SalesRepo)(nil)

// SaveSales inserts the sales in a single batch, assigning missing IDs
func (r *SalesRepo) SaveSales(ctx context.Context, sales []*entities.Sale) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	batch := &pgx.Batch{}
	for _, s := range sales {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		batch.Queue(`INSERT INTO sales (id, product_code, sold_on, quantity, cost_of_goods)
			VALUES ($1, $2, $3, $4, $5)`,
			s.ID, s.ProductCode, s.SoldOn, s.Quantity, s.CostOfGoods)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert sales: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sales: %w", err)
	}
	return nil
}

func (r *SalesRepo) ListSales(ctx context.Context, productCode string) ([]*entities.Sale, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rows, err := r.pool.Query(ctx, `SELECT id, product_code, sold_on, quantity, cost_of_goods
		FROM sales WHERE product_code = $1 ORDER BY sold_on, id`, productCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entities.Sale
	for rows.Next() {
		var s entities.Sale
		if err := rows.Scan(&s.ID, &s.ProductCode, &s.SoldOn, &s.Quantity, &s.CostOfGoods); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

func (r *SalesRepo) SumQuantityInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM sales
		WHERE product_code = $1 AND sold_on BETWEEN $2 AND $3`, productCode, from, to)
}

func (r *SalesRepo) SumCostOfGoodsInRange(ctx context.Context, productCode string, from, to time.Time) (float64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(cost_of_goods), 0) FROM sales
		WHERE product_code = $1 AND sold_on BETWEEN $2 AND $3`, productCode, from, to)
}

func (r *SalesRepo) sum(ctx context.Context, query, productCode string, from, to time.Time) (float64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("database pool not configured")
	}

	var total float64
	if err := r.pool.QueryRow(ctx, query, productCode, civil(from), civil(to)).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

// civil drops the time of day so DATE comparisons use the calendar date
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
