package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/memory"
)

// Loader handles loading shop data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var (
	itemsHeader = []string{
		"part_number", "description", "unit_of_measure", "annual_consumption", "current_stock",
		"lead_time_days", "safety_stock", "min_order_qty", "lot_size_rule", "lot_size", "turnover_coefficient",
	}
	// optional trailing items column; blank means the planner default
	workingDaysColumn = "working_days_per_year"
	salesHeader       = []string{"product_code", "date", "quantity", "cost_of_goods"}
)

// LoadItems loads items from a CSV file. The working_days_per_year column
// may follow turnover_coefficient; without it every item takes the planner
// default.
func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	records, err := readRecords(filename, "items", ',')
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("items CSV must have header and at least one data row")
	}

	// Validate header
	header := records[0]
	expected := itemsHeader
	if len(header) == len(itemsHeader)+1 {
		expected = append(append([]string{}, itemsHeader...), workingDaysColumn)
	}
	if !validateHeader(header, expected) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", itemsHeader, header)
	}

	var items []*entities.Item
	for i, record := range records[1:] {
		if len(record) != len(expected) {
			return nil, fmt.Errorf("items CSV row %d: expected %d columns, got %d", i+2, len(expected), len(record))
		}

		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}

		items = append(items, item)
	}

	return items, nil
}

// LoadSales loads sales ledger rows from a CSV file
func (l *Loader) LoadSales(filename string) ([]*entities.Sale, error) {
	records, err := readRecords(filename, "sales", ',')
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("sales CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, salesHeader) {
		return nil, fmt.Errorf("sales CSV header mismatch. Expected: %v, Got: %v", salesHeader, header)
	}

	var sales []*entities.Sale
	for i, record := range records[1:] {
		if len(record) != len(salesHeader) {
			return nil, fmt.Errorf("sales CSV row %d: expected %d columns, got %d", i+2, len(salesHeader), len(record))
		}

		sale, err := parseSale(record)
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: %w", i+2, err)
		}

		sales = append(sales, sale)
	}

	return sales, nil
}

// LoadOrders loads an order table exported from the office spreadsheet. The
// header is kept as-is; columns are resolved by name downstream. Semicolon
// or comma delimiters are detected from the header line.
func (l *Loader) LoadOrders(filename string) (*memory.Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open orders file %s: %w", filename, err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	records, err := parseRecords(bytes.NewReader(data), sniffDelimiter(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read orders CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("orders CSV must have a header row")
	}

	table := memory.NewTable(records[0])
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}
		table.AddRow(row...)
	}

	return table, nil
}

// Helper functions for parsing CSV records

func readRecords(filename, kind string, comma rune) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := parseRecords(file, comma)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	return records, nil
}

func parseRecords(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func sniffDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		name := strings.TrimPrefix(actual[i], "\ufeff")
		if strings.ToLower(strings.TrimSpace(name)) != col {
			return false
		}
	}

	return true
}

func parseItem(record []string) (*entities.Item, error) {
	annual, err := parseFloat("annual_consumption", record[3])
	if err != nil {
		return nil, err
	}

	current, err := parseFloat("current_stock", record[4])
	if err != nil {
		return nil, err
	}

	leadTimeDays, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %s", record[5])
	}

	safetyStock, err := parseFloat("safety_stock", record[6])
	if err != nil {
		return nil, err
	}

	minOrderQty, err := parseFloat("min_order_qty", record[7])
	if err != nil {
		return nil, err
	}

	lotSizeRule, err := parseLotSizeRule(record[8])
	if err != nil {
		return nil, err
	}

	lotSize, err := parseFloat("lot_size", record[9])
	if err != nil {
		return nil, err
	}

	coefficient, err := parseFloat("turnover_coefficient", record[10])
	if err != nil {
		return nil, err
	}

	item, err := entities.NewItem(
		entities.PartNumber(strings.TrimSpace(record[0])),
		record[1],
		leadTimeDays,
		lotSizeRule,
		minOrderQty,
		lotSize,
		safetyStock,
		strings.TrimSpace(record[2]),
	)
	if err != nil {
		return nil, err
	}

	item.AnnualConsumption = annual
	item.CurrentStock = current
	item.TurnoverCoefficient = coefficient
	if len(record) > len(itemsHeader) {
		if v := strings.TrimSpace(record[len(itemsHeader)]); v != "" {
			days, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %s", workingDaysColumn, v)
			}
			item.WorkingDaysPerYear = days
		}
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func parseSale(record []string) (*entities.Sale, error) {
	soldOn, err := time.Parse("2006-01-02", strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", record[1])
	}

	quantity, err := parseFloat("quantity", record[2])
	if err != nil {
		return nil, err
	}

	cost, err := parseFloat("cost_of_goods", record[3])
	if err != nil {
		return nil, err
	}

	return entities.NewSale(strings.TrimSpace(record[0]), soldOn, quantity, cost)
}

// parseFloat reads a number; blank cells are zero
func parseFloat(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", field, s)
	}
	return f, nil
}

func parseLotSizeRule(s string) (entities.LotSizeRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lotforlot", "":
		return entities.LotForLot, nil
	case "minimumqty":
		return entities.MinimumQty, nil
	case "standardpack":
		return entities.StandardPack, nil
	default:
		return entities.LotForLot, fmt.Errorf("invalid lot_size_rule: %s (expected: LotForLot, MinimumQty, or StandardPack)", s)
	}
}
