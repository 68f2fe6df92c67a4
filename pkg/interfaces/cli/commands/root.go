package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/shopplan/pkg/application/services/backlog"
	"github.com/vsinha/shopplan/pkg/application/services/duration"
	"github.com/vsinha/shopplan/pkg/application/services/replenishment"
	"github.com/vsinha/shopplan/pkg/domain/repositories"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/shopplan/pkg/interfaces/cli/output"
)

// OrderSource provides the stored production orders as a row source
type OrderSource interface {
	OrderTable(ctx context.Context) (*memory.Table, error)
}

// App holds the services and stores used by CLI commands
type App struct {
	Calendar  *calendar.HolidayCalendar
	Parser    *datetime.Parser
	Durations *duration.Calculator
	Backlog   *backlog.Aggregator
	Planner   *replenishment.Planner
	Loader    *csv.Loader
	Sales     repositories.SalesRepository
	Orders    OrderSource

	// Capacity is the default area per hour used when no completion history exists
	Capacity      float64
	DefaultFormat string
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

type globalFlags struct {
	format    string
	outputDir string
	verbose   bool
}

// NewRootCmd creates the top-level "shopplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "shopplan",
		Short:         "Business calendar, backlog forecast and replenishment planning",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flags.format {
			case output.FormatText, output.FormatJSON, output.FormatCSV:
				return nil
			default:
				return fmt.Errorf("unsupported output format: %s", flags.format)
			}
		},
	}

	format := app.DefaultFormat
	if format == "" {
		format = output.FormatText
	}
	root.PersistentFlags().StringVarP(&flags.format, "format", "f", format, "Output format (text, json, csv)")
	root.PersistentFlags().StringVarP(&flags.outputDir, "output", "o", "", "Write json/csv results to this directory")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newHolidaysCmd(app, flags),
		newDurationCmd(app, flags),
		newNormalizeCmd(app, flags),
		newBacklogCmd(app, flags),
		newPlanCmd(app, flags),
		newTurnoverCmd(app, flags),
		newSalesCmd(app, flags),
	)

	return root
}

func (f *globalFlags) config(cmd *cobra.Command) output.Config {
	return output.Config{
		Format:    f.format,
		OutputDir: f.outputDir,
		Verbose:   f.verbose,
		Writer:    cmd.OutOrStdout(),
	}
}
