package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/memory"
)

// OrderColumns is the header of the original order table. The positions
// match the fixed layout the backlog falls back to.
var OrderColumns = []string{
	"Broj naloga", "Kupac", "Proizvod", "Količina", "Površina",
	"Neto vrijednost", "Datum isporuke", "Status", "Vrijeme završetka",
}

var statusNames = map[entities.OrderStatus]string{
	entities.Pending:    "novo",
	entities.InProgress: "u izradi",
	entities.Completed:  "zavrseno",
}

// OrderRepo stores production orders on SQLite
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo creates a new OrderRepo
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// SaveOrders inserts or replaces orders by order number
func (r *OrderRepo) SaveOrders(ctx context.Context, orders []*entities.ProductionOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO production_orders
		(order_number, customer, product, quantity, area, net_value, planned_date, status, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(order_number) DO UPDATE SET
			customer = excluded.customer,
			product = excluded.product,
			quantity = excluded.quantity,
			area = excluded.area,
			net_value = excluded.net_value,
			planned_date = excluded.planned_date,
			status = excluded.status,
			completed_at = excluded.completed_at`

	for _, o := range orders {
		var planned any
		if !o.PlannedDate.IsZero() {
			planned = o.PlannedDate.Format(dateLayout)
		}
		var completed any
		if o.CompletedAt != nil {
			completed = o.CompletedAt.Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx, query,
			o.OrderNumber, o.Customer, o.Product, o.Quantity, o.Area, o.NetValue,
			planned, statusNames[o.Status], completed,
		)
		if err != nil {
			return fmt.Errorf("saving order %s: %w", o.OrderNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing orders: %w", err)
	}
	return nil
}

// OrderTable returns every order as a row source laid out like the
// original order table. Dates are passed through as stored text.
func (r *OrderRepo) OrderTable(ctx context.Context) (*memory.Table, error) {
	query := `SELECT order_number, customer, product, quantity, area, net_value, planned_date, status, completed_at
		FROM production_orders ORDER BY order_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	table := memory.NewTable(OrderColumns)
	for rows.Next() {
		var (
			number, customer, product, status string
			quantity, area, netValue          float64
			planned, completed                sql.NullString
		)
		if err := rows.Scan(&number, &customer, &product, &quantity, &area, &netValue, &planned, &status, &completed); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		table.AddRow(number, customer, product, quantity, area, netValue,
			nullable(planned), status, nullable(completed))
	}
	return table, rows.Err()
}

func nullable(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
