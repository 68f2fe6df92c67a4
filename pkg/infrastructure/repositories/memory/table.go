package memory

import "github.com/vsinha/shopplan/pkg/domain/repositories"

// Table is an in-memory order table with named columns
type Table struct {
	columns []string
	rows    [][]any
}

// NewTable creates an empty table with the given header
func NewTable(columns []string) *Table {
	return &Table{columns: append([]string(nil), columns...)}
}

// Verify interface compliance
var _ repositories.RowSource = (*Table)(nil)

// AddRow appends a row. Short rows read as nil in their missing cells.
func (t *Table) AddRow(values ...any) {
	t.rows = append(t.rows, values)
}

func (t *Table) Columns() []string {
	return t.columns
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Value(row, col int) any {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	r := t.rows[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}
