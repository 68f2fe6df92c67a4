package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func samplePlans() []entities.ReplenishmentPlan {
	return []entities.ReplenishmentPlan{
		{
			PartNumber:          "P-100",
			Description:         "Glass pane",
			DailyUsage:          10,
			ReorderPoint:        150,
			TargetMaxLevel:      400,
			CurrentStock:        120,
			OrderNow:            true,
			DaysUntilOrder:      intPtr(0),
			RecommendedQuantity: 280,
			PlannedOrderDate:    timePtr(day(2024, 6, 13)),
			ExpectedArrival:     timePtr(day(2024, 6, 18)),
		},
		{
			PartNumber:     "P-200",
			Description:    "Unused frame",
			ReorderPoint:   5,
			TargetMaxLevel: 5,
			CurrentStock:   40,
		},
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Holidays(HolidayReport{Year: 2024}, Config{Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")
}

func TestGenerate_CSVNotSupported(t *testing.T) {
	err := Duration(DurationReport{Phrase: "sat 1 minuta 0"}, Config{Format: FormatCSV, Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for duration")
}

func TestHolidays_Text(t *testing.T) {
	holidays := calendar.New().HolidaysFor(2024).Holidays()
	var buf bytes.Buffer

	err := Holidays(HolidayReport{Year: 2024, Holidays: holidays, WorkingDays: 251}, Config{Format: FormatText, Writer: &buf})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "HOLIDAYS 2024")
	assert.Contains(t, out, "01.01.2024")
	assert.Contains(t, out, "Nova godina")
	assert.Contains(t, out, "12 holidays, 251 working days")
}

func TestHolidays_JSON(t *testing.T) {
	holidays := calendar.New().HolidaysFor(2024).Holidays()
	var buf bytes.Buffer

	require.NoError(t, Holidays(HolidayReport{Year: 2024, Holidays: holidays}, Config{Format: FormatJSON, Writer: &buf}))

	var decoded struct {
		Year     int `json:"year"`
		Holidays []struct {
			Date time.Time `json:"date"`
			Name string    `json:"name"`
		} `json:"holidays"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2024, decoded.Year)
	assert.Len(t, decoded.Holidays, 12)
}

func TestDuration_Text(t *testing.T) {
	var buf bytes.Buffer
	report := DurationReport{
		Start:  time.Date(2024, 6, 13, 14, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC),
		Hours:  4,
		Phrase: "sat 4 minuta 0",
	}

	require.NoError(t, Duration(report, Config{Writer: &buf, Verbose: true}))
	assert.Contains(t, buf.String(), "sat 4 minuta 0")
	assert.Contains(t, buf.String(), "13.06.2024 14:00 -> 14.06.2024 10:00")
}

func TestNormalized(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Normalized(NormalizedDate{Input: "5.3.24 7:05", Normalized: "05.03.2024 07:05", Valid: true}, Config{Writer: &buf}))
	assert.Equal(t, "05.03.2024 07:05\n", buf.String())

	buf.Reset()
	require.NoError(t, Normalized(NormalizedDate{Input: "garbage"}, Config{Format: FormatJSON, Writer: &buf}))
	assert.Contains(t, buf.String(), `"valid": false`)
}

func TestBacklog_Text(t *testing.T) {
	snapshot := &entities.BacklogSnapshot{
		Total:                 entities.BacklogTotals{Quantity: decimal.NewFromInt(23), Area: decimal.NewFromInt(65)},
		DailyRate:             decimal.RequireFromString("12.5"),
		RateSource:            entities.RateFromHistory,
		ProductionDays:        2,
		RemainingWorkingDays:  decimal.RequireFromString("3.2"),
		RequiredWorkingDays:   4,
		RemainingCalendarDays: decimal.RequireFromString("5.2"),
		PlannedDelivery:       day(2024, 6, 19),
		LegacyColumns:         []string{"status"},
	}
	var buf bytes.Buffer

	require.NoError(t, Backlog(snapshot, Config{Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "BACKLOG")
	assert.Contains(t, out, "23.00")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "(history)")
	assert.Contains(t, out, "19.06.2024")
	assert.Contains(t, out, "[status]")
}

func TestBacklog_JSON(t *testing.T) {
	snapshot := &entities.BacklogSnapshot{
		DailyRate:  decimal.NewFromInt(80),
		RateSource: entities.RateFromCapacity,
	}
	var buf bytes.Buffer

	require.NoError(t, Backlog(snapshot, Config{Format: FormatJSON, Writer: &buf}))
	assert.Contains(t, buf.String(), `"rate_source": "capacity"`)
	assert.Contains(t, buf.String(), `"daily_rate": "80"`)
}

func TestPlans_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Plans(samplePlans(), Config{Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "P-100")
	assert.Contains(t, out, "now")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "18.06.2024")
}

func TestPlans_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Plans(nil, Config{Writer: &buf}))
	assert.Contains(t, buf.String(), "No items to plan")
}

func TestPlans_CSVToWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Plans(samplePlans(), Config{Format: FormatCSV, Writer: &buf}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "part_number", records[0][0])
	assert.Equal(t, []string{"P-100", "true", "0", "280", "2024-06-13", "2024-06-18"},
		[]string{records[1][0], records[1][7], records[1][8], records[1][9], records[1][10], records[1][11]})
	assert.Equal(t, "", records[2][8], "never-order plans have no day count")
	assert.Equal(t, "", records[2][10])
}

func TestPlans_CSVToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var buf bytes.Buffer

	require.NoError(t, Plans(samplePlans(), Config{Format: FormatCSV, OutputDir: dir, Verbose: true, Writer: &buf}))

	data, err := os.ReadFile(filepath.Join(dir, "replenishment_plans.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "part_number,description"))
	assert.Contains(t, buf.String(), "CSV results saved to")
}

func TestTurnover_JSONInfiniteDIO(t *testing.T) {
	report := &entities.TurnoverReport{
		ProductCode: "P-100",
		Period:      entities.Period{From: day(2024, 1, 1), To: day(2024, 3, 31)},
		CurrentQty:  50,
		DIO:         math.Inf(1),
	}
	var buf bytes.Buffer

	require.NoError(t, Turnover(report, Config{Format: FormatJSON, Writer: &buf}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Nil(t, decoded["dio"])
	assert.Equal(t, "2024-01-01", decoded["from"])
	assert.Equal(t, float64(90), decoded["days"])
	assert.Equal(t, "P-100", decoded["product_code"])
}

func TestTurnover_Text(t *testing.T) {
	report := &entities.TurnoverReport{
		ProductCode: "P-100",
		Period:      entities.Period{From: day(2024, 1, 1), To: day(2024, 3, 31)},
		Turnover:    2,
		DIO:         45,
	}
	var buf bytes.Buffer

	require.NoError(t, Turnover(report, Config{Writer: &buf}))
	assert.Contains(t, buf.String(), "TURNOVER P-100")
	assert.Contains(t, buf.String(), "45.00")
	assert.Contains(t, buf.String(), "(90 days)")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable([]string{"A", "Long header"}, [][]string{{"wide value", "x"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "wide value  x", lines[2])
	assert.Empty(t, RenderTable(nil, nil))
}

func TestSales_TextAndCSV(t *testing.T) {
	sales := []*entities.Sale{
		{ID: "a", ProductCode: "P-100", SoldOn: day(2024, 1, 5), Quantity: 10, CostOfGoods: 125.5},
		{ID: "b", ProductCode: "P-100", SoldOn: day(2024, 2, 5), Quantity: 5, CostOfGoods: 60},
	}

	var buf bytes.Buffer
	require.NoError(t, Sales(sales, Config{Writer: &buf}))
	assert.Contains(t, buf.String(), "05.01.2024")
	assert.Contains(t, buf.String(), "2 records, 15.00 units, 185.50 cost")

	buf.Reset()
	require.NoError(t, Sales(sales, Config{Format: FormatCSV, Writer: &buf}))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"a", "P-100", "2024-01-05", "10", "125.5"}, records[1])
}
