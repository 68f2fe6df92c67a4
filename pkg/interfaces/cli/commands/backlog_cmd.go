package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsinha/shopplan/pkg/domain/repositories"
	"github.com/vsinha/shopplan/pkg/infrastructure/logging"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/shopplan/pkg/interfaces/cli/output"
)

func newBacklogCmd(app *App, flags *globalFlags) *cobra.Command {
	var (
		ordersPath string
		capacity   float64
	)

	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "Summarize the production backlog and forecast its delivery date",
		Long: `Reads the production order table from a CSV export, a SQLite database
file, or the configured database, and reports completed and pending totals,
the daily throughput and the planned delivery date of the remaining work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadOrders(cmd.Context(), app, ordersPath)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("capacity") {
				capacity = app.Capacity
			}

			snapshot, err := app.Backlog.Summarize(rows, capacity)
			if err != nil {
				return fmt.Errorf("summarizing backlog: %w", err)
			}
			return output.Backlog(snapshot, flags.config(cmd))
		},
	}

	cmd.Flags().StringVar(&ordersPath, "orders", "", "Order table (.csv, or .db/.sqlite for a SQLite file)")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Area per hour when there is no completion history")
	return cmd
}

func loadOrders(ctx context.Context, app *App, path string) (repositories.RowSource, error) {
	if path == "" {
		if app.Orders == nil {
			return nil, fmt.Errorf("no order source configured: pass --orders")
		}
		table, err := app.Orders.OrderTable(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading stored orders: %w", err)
		}
		return table, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		db, err := sqlite.OpenDB(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		table, err := sqlite.NewOrderRepo(db).OrderTable(ctx)
		if err != nil {
			return nil, err
		}
		logging.Debug("orders loaded", "source", path, "rows", table.Len())
		return table, nil
	default:
		table, err := app.Loader.LoadOrders(path)
		if err != nil {
			return nil, fmt.Errorf("error loading orders: %w", err)
		}
		logging.Debug("orders loaded", "source", path, "rows", table.Len())
		return table, nil
	}
}
