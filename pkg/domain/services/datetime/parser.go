// Package datetime parses the free-form date and date-time text found in
// shop documents and order tables.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/vsinha/shopplan/pkg/infrastructure/logging"
)

// Layout is the canonical day.month.year hour:minute form
const Layout = "02.01.2006 15:04"

// Date-time layouts in the order they are tried. Day, month and hour accept
// one or two digits. Two-digit years follow the time package pivot:
// 69-99 map to 19xx, 00-68 to 20xx.
var dateTimeLayouts = []string{
	"2.1.2006 15:04",
	"2.1.2006. 15:04",
	"2.1.06 15:04",
	"2.1.06. 15:04",
}

// Date-only layouts in priority order
var dateLayouts = []string{
	"2006-01-02",
	"2.1.2006.",
	"2.1.2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

const isoDateLen = len("2006-01-02")

// Parser parses date and date-time text in a fixed location
type Parser struct {
	loc *time.Location
}

// NewParser creates a Parser; a nil location means time.Local
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{loc: loc}
}

// Location returns the location timestamps are parsed in
func (p *Parser) Location() *time.Location {
	return p.loc
}

// Parse reads a date-time. The first layout that matches wins; ok is false
// when none does.
func (p *Parser) Parse(text string) (t time.Time, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, text, p.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders t in the canonical layout
func (p *Parser) Format(t time.Time) string {
	return t.In(p.loc).Format(Layout)
}

// Normalize returns the canonical form of text, or "" when it does not parse
func (p *Parser) Normalize(text string) string {
	t, ok := p.Parse(text)
	if !ok {
		return ""
	}
	return p.Format(t)
}

// ParseDate reads a date without caring about time of day and returns
// midnight of that date. As a last resort it takes the ten characters
// starting at the first "20" and reads them as an ISO date; such hits are
// logged because they can come from unrelated numbers.
func (p *Parser) ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, p.loc); err == nil {
			return midnight(t.In(p.loc)), true
		}
	}
	if t, ok := p.Parse(text); ok {
		return midnight(t), true
	}

	idx := strings.Index(text, "20")
	if idx < 0 || len(text)-idx < isoDateLen {
		return time.Time{}, false
	}
	candidate := text[idx : idx+isoDateLen]
	t, err := time.ParseInLocation("2006-01-02", candidate, p.loc)
	if err != nil {
		return time.Time{}, false
	}
	logging.Warn("date recovered by substring scan", "input", text, "date", candidate)
	return t, true
}

// DateValue resolves a raw table value to a date. Strings and byte slices
// go through ParseDate. A time at exactly midnight is a date cell and keeps
// its calendar date; other times are moved into the parser location first.
func (p *Parser) DateValue(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		if isMidnight(val) {
			y, m, d := val.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, p.loc), true
		}
		return midnight(val.In(p.loc)), true
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return p.DateValue(*val)
	case string:
		return p.ParseDate(val)
	case []byte:
		return p.ParseDate(string(val))
	case fmt.Stringer:
		return p.ParseDate(val.String())
	default:
		return time.Time{}, false
	}
}

func isMidnight(t time.Time) bool {
	h, m, sec := t.Clock()
	return h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
