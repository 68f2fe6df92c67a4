package backlog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vsinha/shopplan/pkg/domain/repositories"
)

// Field is a logical backlog column
type Field int

const (
	FieldPlannedDate Field = iota
	FieldNetValue
	FieldQuantity
	FieldStatus
	FieldArea
	FieldCompletedAt
	fieldCount
)

// String method for Field enum
func (f Field) String() string {
	switch f {
	case FieldPlannedDate:
		return "planned_date"
	case FieldNetValue:
		return "net_value"
	case FieldQuantity:
		return "quantity"
	case FieldStatus:
		return "status"
	case FieldArea:
		return "area"
	case FieldCompletedAt:
		return "completed_at"
	default:
		return "unknown"
	}
}

// Aliases are folded names, most specific first. A column matches when its
// folded name contains the alias.
var fieldAliases = [fieldCount][]string{
	FieldPlannedDate: {"datumisporuke", "rokisporuke", "planiranidatum", "isporuka", "deliverydate", "planneddate", "duedate"},
	FieldNetValue:    {"netovrijednost", "vrijednost", "iznos", "netvalue", "value", "amount"},
	FieldQuantity:    {"kolicina", "komada", "quantity", "qty"},
	FieldStatus:      {"status", "stanje"},
	FieldArea:        {"povrsina", "kvadratura", "m2", "area", "sqm"},
	FieldCompletedAt: {"vrijemezavrsetka", "datumzavrsetka", "zavrseno", "completedat", "completiontime", "finishedat", "endtime"},
}

// Positions of the original fixed order table, used when no header matches
var legacyPositions = [fieldCount]int{
	FieldQuantity:    3,
	FieldArea:        4,
	FieldNetValue:    5,
	FieldPlannedDate: 6,
	FieldStatus:      7,
	FieldCompletedAt: 8,
}

// ColumnMap holds the resolved column index of every logical field
type ColumnMap struct {
	index  [fieldCount]int
	legacy []Field
	width  int
}

// ResolveColumns maps each field to a column. Aliases are tried in order and
// for each alias the leftmost matching column wins; a field with no match
// falls back to its legacy position.
func ResolveColumns(columns []string) ColumnMap {
	folded := make([]string, len(columns))
	for i, c := range columns {
		folded[i] = foldName(c)
	}

	m := ColumnMap{width: len(columns)}
	for f := Field(0); f < fieldCount; f++ {
		m.index[f] = matchAlias(folded, fieldAliases[f])
		if m.index[f] < 0 {
			m.index[f] = legacyPositions[f]
			m.legacy = append(m.legacy, f)
		}
	}
	return m
}

func matchAlias(folded []string, aliases []string) int {
	for _, alias := range aliases {
		for i, name := range folded {
			if name != "" && strings.Contains(name, alias) {
				return i
			}
		}
	}
	return -1
}

// Index returns the column used for f
func (m ColumnMap) Index(f Field) int {
	return m.index[f]
}

// Legacy returns the fields resolved by fixed position
func (m ColumnMap) Legacy() []Field {
	return m.legacy
}

// IsLegacy reports whether f was resolved by fixed position
func (m ColumnMap) IsLegacy(f Field) bool {
	for _, l := range m.legacy {
		if l == f {
			return true
		}
	}
	return false
}

// Value reads field f of a row, or nil when the column does not exist
func (m ColumnMap) Value(rows repositories.RowSource, row int, f Field) any {
	idx := m.index[f]
	if idx < 0 || idx >= m.width {
		return nil
	}
	return rows.Value(row, idx)
}

var accentFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// fold lowercases s and strips accents; đ has no decomposition and is
// mapped by hand
func fold(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		out = s
	}
	out = strings.NewReplacer("đ", "d", "Đ", "d").Replace(out)
	return strings.ToLower(strings.TrimSpace(out))
}

// foldName folds s and keeps letters and digits only
func foldName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, fold(s))
}
