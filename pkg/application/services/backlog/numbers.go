package backlog

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var blankRemover = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "\t", "")

// toDecimal reads a cell as a number. Text accepts comma or dot decimals;
// when both appear, the last one is the decimal separator. Anything
// unreadable is zero.
func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return fromFloat(val)
	case float32:
		return fromFloat(float64(val))
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt32(val)
	case int64:
		return decimal.NewFromInt(val)
	case string:
		return parseDecimal(val)
	case []byte:
		return parseDecimal(string(val))
	case fmt.Stringer:
		return parseDecimal(val.String())
	default:
		return decimal.Zero
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func parseDecimal(text string) decimal.Decimal {
	s := blankRemover.Replace(strings.TrimSpace(text))
	if s == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
