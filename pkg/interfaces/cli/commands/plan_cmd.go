package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/shopplan/pkg/application/services/replenishment"
	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/infrastructure/logging"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/shopplan/pkg/interfaces/cli/output"
)

func newPlanCmd(app *App, flags *globalFlags) *cobra.Command {
	var (
		itemsPath   string
		part        string
		historyFrom string
		historyTo   string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Reorder points, target levels and order quantities per item",
		Long: `Plans replenishment for every item in the items CSV. With --from and
--to the annual consumption of each item is replaced by the usage recorded
in the sales ledger over that period.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Loader.LoadItems(itemsPath)
			if err != nil {
				return fmt.Errorf("error loading items: %w", err)
			}

			repo := memory.NewItemRepository(len(items))
			if err := repo.LoadItems(items); err != nil {
				return fmt.Errorf("failed to load items into repository: %w", err)
			}

			selected := items
			if part != "" {
				item, err := repo.GetItem(entities.PartNumber(part))
				if err != nil {
					return err
				}
				selected = []*entities.Item{item}
			}

			var plans []entities.ReplenishmentPlan
			switch {
			case historyFrom == "" && historyTo == "" && part == "":
				plans, err = app.Planner.PlanAll(cmd.Context(), repo)
				if err != nil {
					return err
				}
			case historyFrom == "" && historyTo == "":
				plans = []entities.ReplenishmentPlan{app.Planner.Plan(*selected[0])}
			default:
				period, err := parsePeriod(app, historyFrom, historyTo)
				if err != nil {
					return err
				}
				if part == "" {
					if selected, err = repo.GetAllItems(); err != nil {
						return err
					}
				}
				for _, item := range selected {
					plan, report, err := app.Planner.PlanFromHistory(cmd.Context(), *item, period)
					if err != nil {
						return err
					}
					logging.Debug("planned from history", "part", item.PartNumber,
						"sold", report.SoldQuantity, "avg_daily_usage", report.AvgDailyUsage)
					plans = append(plans, plan)
				}
			}

			return output.Plans(plans, flags.config(cmd))
		},
	}

	cmd.Flags().StringVar(&itemsPath, "items", "", "Items CSV file (required)")
	cmd.Flags().StringVar(&part, "part", "", "Plan a single part number")
	cmd.Flags().StringVar(&historyFrom, "from", "", "Start of the usage history period")
	cmd.Flags().StringVar(&historyTo, "to", "", "End of the usage history period")
	_ = cmd.MarkFlagRequired("items")
	return cmd
}

func newTurnoverCmd(app *App, flags *globalFlags) *cobra.Command {
	var (
		product string
		from    string
		to      string
		current float64
	)

	cmd := &cobra.Command{
		Use:   "turnover",
		Short: "Inventory turnover and days of inventory for a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Sales == nil {
				return fmt.Errorf("no sales ledger configured")
			}
			period, err := parsePeriod(app, from, to)
			if err != nil {
				return err
			}

			report, err := replenishment.NewTurnoverAnalyzer(app.Sales).Turnover(cmd.Context(), product, period, current)
			if err != nil {
				return err
			}
			return output.Turnover(report, flags.config(cmd))
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "Product code (required)")
	cmd.Flags().StringVar(&from, "from", "", "Period start date (required)")
	cmd.Flags().StringVar(&to, "to", "", "Period end date (required)")
	cmd.Flags().Float64Var(&current, "current", 0, "Stock on hand at the end of the period")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func parsePeriod(app *App, from, to string) (entities.Period, error) {
	if from == "" || to == "" {
		return entities.Period{}, fmt.Errorf("both --from and --to are required for a period")
	}
	start, ok := app.Parser.ParseDate(from)
	if !ok {
		return entities.Period{}, fmt.Errorf("cannot parse date %q", from)
	}
	end, ok := app.Parser.ParseDate(to)
	if !ok {
		return entities.Period{}, fmt.Errorf("cannot parse date %q", to)
	}
	return entities.NewPeriod(start, end)
}
