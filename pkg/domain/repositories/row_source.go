package repositories

// RowSource is a read-only tabular view of production orders. Columns are
// addressed by index; callers resolve indexes from the declared column names.
type RowSource interface {
	Columns() []string
	Len() int
	// Value returns the cell at (row, col), or nil when out of range
	Value(row, col int) any
}
