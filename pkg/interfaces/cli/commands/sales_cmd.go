package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/shopplan/pkg/infrastructure/logging"
	"github.com/vsinha/shopplan/pkg/interfaces/cli/output"
)

func newSalesCmd(app *App, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Manage the sales ledger used for turnover and history planning",
	}

	cmd.AddCommand(
		newSalesImportCmd(app),
		newSalesListCmd(app, flags),
	)
	return cmd
}

func newSalesImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Append sales records from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Sales == nil {
				return fmt.Errorf("no sales ledger configured")
			}
			sales, err := app.Loader.LoadSales(args[0])
			if err != nil {
				return fmt.Errorf("error loading sales: %w", err)
			}
			if err := app.Sales.SaveSales(cmd.Context(), sales); err != nil {
				return fmt.Errorf("saving sales: %w", err)
			}

			logging.Info("sales imported", "file", args[0], "records", len(sales))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sales from %s\n", len(sales), args[0])
			return nil
		},
	}
}

func newSalesListCmd(app *App, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <product>",
		Short: "List the recorded sales of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Sales == nil {
				return fmt.Errorf("no sales ledger configured")
			}
			sales, err := app.Sales.ListSales(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.Sales(sales, flags.config(cmd))
		},
	}
}
