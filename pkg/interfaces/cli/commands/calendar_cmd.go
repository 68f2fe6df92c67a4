package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/shopplan/pkg/infrastructure/logging"
	"github.com/vsinha/shopplan/pkg/interfaces/cli/output"
)

func newHolidaysCmd(app *App, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [year]",
		Short: "List the public holidays and working-day count of a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := app.now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil || y < 1 || y > 9999 {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}

			first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

			return output.Holidays(output.HolidayReport{
				Year:        year,
				Holidays:    app.Calendar.HolidaysFor(year).Holidays(),
				WorkingDays: app.Calendar.WorkingDaysBetween(first, last),
			}, flags.config(cmd))
		},
	}
}

func newDurationCmd(app *App, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "duration <start> <end>",
		Short: "Working time between two timestamps",
		Long: `Counts the time between start and end that falls inside the daily
working window on working days. Timestamps are day.month.year hour:minute,
for example "13.06.2024 14:00".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, ok := app.Parser.Parse(args[0])
			if !ok {
				return fmt.Errorf("cannot parse start time %q", args[0])
			}
			end, ok := app.Parser.Parse(args[1])
			if !ok {
				return fmt.Errorf("cannot parse end time %q", args[1])
			}

			d := app.Durations.Between(start, end)
			logging.Debug("working duration", "start", start, "end", end, "minutes", d.TotalMinutes())

			return output.Duration(output.DurationReport{
				Start:        start,
				End:          end,
				Hours:        d.Hours,
				Minutes:      d.Minutes,
				TotalMinutes: d.TotalMinutes(),
				Phrase:       d.Render(app.Durations.Phrase()),
			}, flags.config(cmd))
		},
	}
}

func newNormalizeCmd(app *App, flags *globalFlags) *cobra.Command {
	var dateOnly bool

	cmd := &cobra.Command{
		Use:   "normalize <text>...",
		Short: "Rewrite a loosely typed timestamp in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			result := output.NormalizedDate{Input: text}

			if dateOnly {
				if t, ok := app.Parser.ParseDate(text); ok {
					result.Normalized = t.Format("02.01.2006")
					result.Valid = true
				}
			} else {
				result.Normalized = app.Parser.Normalize(text)
				result.Valid = result.Normalized != ""
			}

			return output.Normalized(result, flags.config(cmd))
		},
	}

	cmd.Flags().BoolVar(&dateOnly, "date", false, "Accept date-only input and print the date")
	return cmd
}
