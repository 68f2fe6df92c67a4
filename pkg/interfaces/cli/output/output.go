package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

const displayDate = "02.01.2006"

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Writer    io.Writer
}

func (c Config) out() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// HolidayReport lists one year's holidays with its working-day count
type HolidayReport struct {
	Year        int                `json:"year"`
	Holidays    []calendar.Holiday `json:"holidays"`
	WorkingDays int                `json:"working_days"`
}

// DurationReport is the working time between two instants
type DurationReport struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Hours        int       `json:"hours"`
	Minutes      int       `json:"minutes"`
	TotalMinutes int       `json:"total_minutes"`
	Phrase       string    `json:"phrase"`
}

// NormalizedDate is the canonical rendering of a user supplied timestamp
type NormalizedDate struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Valid      bool   `json:"valid"`
}

type generator struct {
	name string
	data any
	text func(io.Writer) error
	csv  func(*csv.Writer) error
}

func generate(g generator, config Config) error {
	switch config.Format {
	case FormatText, "":
		return g.text(config.out())
	case FormatJSON:
		return generateJSON(g, config)
	case FormatCSV:
		if g.csv == nil {
			return fmt.Errorf("csv output is not supported for %s", g.name)
		}
		return generateCSV(g, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateJSON(g generator, config Config) error {
	jsonData, err := json.MarshalIndent(g.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err = fmt.Fprintln(config.out(), string(jsonData))
		return err
	}

	filename, err := outputFile(config.OutputDir, g.name+".json")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.out(), "JSON results saved to: %s\n", filename)
	}
	return nil
}

func generateCSV(g generator, config Config) error {
	if config.OutputDir == "" {
		w := csv.NewWriter(config.out())
		if err := g.csv(w); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}

	filename, err := outputFile(config.OutputDir, g.name+".csv")
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := g.csv(w); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.out(), "CSV results saved to: %s\n", filename)
	}
	return nil
}

func outputFile(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// Holidays renders a year's holiday list
func Holidays(report HolidayReport, config Config) error {
	return generate(generator{
		name: "holidays",
		data: report,
		text: func(w io.Writer) error {
			rows := make([][]string, 0, len(report.Holidays))
			for _, h := range report.Holidays {
				day := h.Date.Weekday().String()[:3]
				if calendar.IsWeekend(h.Date) {
					day = StyleDim.Render(day)
				}
				rows = append(rows, []string{h.Date.Format(displayDate), day, h.Name})
			}
			_, err := fmt.Fprintf(w, "%s\n%s\n%d holidays, %d working days\n",
				Header(fmt.Sprintf("Holidays %d", report.Year)),
				RenderTable([]string{"Date", "Day", "Name"}, rows),
				len(report.Holidays), report.WorkingDays)
			return err
		},
		csv: func(w *csv.Writer) error {
			if err := w.Write([]string{"date", "name"}); err != nil {
				return err
			}
			for _, h := range report.Holidays {
				if err := w.Write([]string{h.Date.Format("2006-01-02"), h.Name}); err != nil {
					return err
				}
			}
			return nil
		},
	}, config)
}

// Duration renders a working duration
func Duration(report DurationReport, config Config) error {
	return generate(generator{
		name: "duration",
		data: report,
		text: func(w io.Writer) error {
			if _, err := fmt.Fprintln(w, StyleBold.Render(report.Phrase)); err != nil {
				return err
			}
			if config.Verbose {
				_, err := fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%s -> %s",
					report.Start.Format("02.01.2006 15:04"), report.End.Format("02.01.2006 15:04"))))
				return err
			}
			return nil
		},
	}, config)
}

// Normalized renders a normalized timestamp; invalid input prints an empty line
func Normalized(result NormalizedDate, config Config) error {
	return generate(generator{
		name: "normalized",
		data: result,
		text: func(w io.Writer) error {
			_, err := fmt.Fprintln(w, result.Normalized)
			return err
		},
	}, config)
}

// Backlog renders a backlog snapshot
func Backlog(snapshot *entities.BacklogSnapshot, config Config) error {
	return generate(generator{
		name: "backlog",
		data: snapshot,
		text: func(w io.Writer) error {
			totals := func(label string, t entities.BacklogTotals) []string {
				return []string{label, t.Quantity.StringFixed(2), t.Area.StringFixed(2), t.NetValue.StringFixed(2)}
			}
			table := RenderTable(
				[]string{"", "Quantity", "Area", "Net value"},
				[][]string{
					totals("Total", snapshot.Total),
					totals("Completed", snapshot.Completed),
					totals("Pending", snapshot.Pending),
				})

			fmt.Fprintf(w, "%s\n%s\n", Header("Backlog"), table)
			fmt.Fprintf(w, "Daily rate:              %s %s\n",
				snapshot.DailyRate.StringFixed(2), StyleDim.Render("("+snapshot.RateSource.String()+")"))
			fmt.Fprintf(w, "Production days:         %d\n", snapshot.ProductionDays)
			fmt.Fprintf(w, "Remaining working days:  %s\n", snapshot.RemainingWorkingDays.StringFixed(2))
			fmt.Fprintf(w, "Required working days:   %d\n", snapshot.RequiredWorkingDays)
			fmt.Fprintf(w, "Remaining calendar days: %s\n", snapshot.RemainingCalendarDays.StringFixed(2))
			fmt.Fprintf(w, "Planned delivery:        %s\n",
				StyleBold.Render(snapshot.PlannedDelivery.Format(displayDate)))
			if len(snapshot.LegacyColumns) > 0 {
				fmt.Fprintf(w, "%s\n", StyleYellow.Render(fmt.Sprintf(
					"Columns read by position: %v", snapshot.LegacyColumns)))
			}
			return nil
		},
	}, config)
}

// Plans renders replenishment plans; CSV is supported
func Plans(plans []entities.ReplenishmentPlan, config Config) error {
	return generate(generator{
		name: "replenishment_plans",
		data: plans,
		text: func(w io.Writer) error {
			if len(plans) == 0 {
				_, err := fmt.Fprintln(w, StyleDim.Render("No items to plan"))
				return err
			}
			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				rows = append(rows, []string{
					string(p.PartNumber),
					p.Description,
					number(p.DailyUsage),
					number(p.ReorderPoint),
					number(p.TargetMaxLevel),
					number(p.CurrentStock),
					orderWhen(p),
					number(p.RecommendedQuantity),
					optionalDate(p.PlannedOrderDate),
					optionalDate(p.ExpectedArrival),
				})
			}
			_, err := fmt.Fprintf(w, "%s\n%s", Header("Replenishment"), RenderTable(
				[]string{"Part", "Description", "Daily", "ROP", "Max", "Stock", "Order", "Qty", "Order date", "Arrival"},
				rows))
			return err
		},
		csv: func(w *csv.Writer) error {
			header := []string{
				"part_number", "description", "daily_usage", "reorder_point", "target_cycle_stock",
				"target_max_level", "current_stock", "order_now", "days_until_order",
				"recommended_quantity", "planned_order_date", "expected_arrival", "estimated_turnover",
			}
			if err := w.Write(header); err != nil {
				return err
			}
			for _, p := range plans {
				days := ""
				if p.DaysUntilOrder != nil {
					days = strconv.Itoa(*p.DaysUntilOrder)
				}
				record := []string{
					string(p.PartNumber),
					p.Description,
					csvNumber(p.DailyUsage),
					csvNumber(p.ReorderPoint),
					csvNumber(p.TargetCycleStock),
					csvNumber(p.TargetMaxLevel),
					csvNumber(p.CurrentStock),
					strconv.FormatBool(p.OrderNow),
					days,
					csvNumber(p.RecommendedQuantity),
					isoDate(p.PlannedOrderDate),
					isoDate(p.ExpectedArrival),
					csvNumber(p.EstimatedTurnover),
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
			return nil
		},
	}, config)
}

// Sales renders ledger records; CSV is supported
func Sales(sales []*entities.Sale, config Config) error {
	return generate(generator{
		name: "sales",
		data: sales,
		text: func(w io.Writer) error {
			if len(sales) == 0 {
				_, err := fmt.Fprintln(w, StyleDim.Render("No sales recorded"))
				return err
			}
			rows := make([][]string, 0, len(sales))
			var quantity, cost float64
			for _, s := range sales {
				rows = append(rows, []string{
					s.SoldOn.Format(displayDate), s.ProductCode, number(s.Quantity), number(s.CostOfGoods),
				})
				quantity += s.Quantity
				cost += s.CostOfGoods
			}
			_, err := fmt.Fprintf(w, "%s%s\n", RenderTable([]string{"Date", "Product", "Quantity", "Cost of goods"}, rows),
				StyleDim.Render(fmt.Sprintf("%d records, %s units, %s cost", len(sales), number(quantity), number(cost))))
			return err
		},
		csv: func(w *csv.Writer) error {
			if err := w.Write([]string{"id", "product_code", "date", "quantity", "cost_of_goods"}); err != nil {
				return err
			}
			for _, s := range sales {
				record := []string{s.ID, s.ProductCode, s.SoldOn.Format("2006-01-02"), csvNumber(s.Quantity), csvNumber(s.CostOfGoods)}
				if err := w.Write(record); err != nil {
					return err
				}
			}
			return nil
		},
	}, config)
}

type turnoverJSON struct {
	*entities.TurnoverReport
	From string   `json:"from"`
	To   string   `json:"to"`
	Days int      `json:"days"`
	DIO  *float64 `json:"dio"`
}

// Turnover renders a turnover report. JSON carries a null DIO when it is unbounded.
func Turnover(report *entities.TurnoverReport, config Config) error {
	view := turnoverJSON{
		TurnoverReport: report,
		From:           report.Period.From.Format("2006-01-02"),
		To:             report.Period.To.Format("2006-01-02"),
		Days:           report.Period.Days(),
	}
	if !report.DIOInfinite() {
		dio := report.DIO
		view.DIO = &dio
	}

	return generate(generator{
		name: "turnover",
		data: view,
		text: func(w io.Writer) error {
			dio := "∞"
			if view.DIO != nil {
				dio = number(*view.DIO)
			}
			fmt.Fprintf(w, "%s\n", Header("Turnover "+report.ProductCode))
			fmt.Fprintf(w, "Period:          %s - %s (%d days)\n",
				report.Period.From.Format(displayDate), report.Period.To.Format(displayDate), view.Days)
			fmt.Fprintf(w, "Sold quantity:   %s\n", number(report.SoldQuantity))
			fmt.Fprintf(w, "Cost of goods:   %s\n", number(report.CostOfGoods))
			fmt.Fprintf(w, "Opening qty:     %s\n", number(report.OpeningQty))
			fmt.Fprintf(w, "Current qty:     %s\n", number(report.CurrentQty))
			fmt.Fprintf(w, "Average stock:   %s\n", number(report.AverageStock))
			fmt.Fprintf(w, "Avg daily usage: %s\n", number(report.AvgDailyUsage))
			fmt.Fprintf(w, "Turnover:        %s\n", StyleBold.Render(number(report.Turnover)))
			fmt.Fprintf(w, "DIO:             %s\n", dio)
			return nil
		},
	}, config)
}

func orderWhen(p entities.ReplenishmentPlan) string {
	switch {
	case p.OrderNow:
		return StyleRed.Render("now")
	case p.NeverOrder():
		return StyleDim.Render("never")
	case *p.DaysUntilOrder == 1:
		return StyleYellow.Render("in 1 day")
	default:
		return StyleGreen.Render(fmt.Sprintf("in %d days", *p.DaysUntilOrder))
	}
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func csvNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(displayDate)
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
