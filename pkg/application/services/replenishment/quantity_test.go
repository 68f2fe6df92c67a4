package replenishment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendOrderQuantity(t *testing.T) {
	cases := []struct {
		name                      string
		current, target, moq, lot float64
		want                      float64
	}{
		{"already at target", 100, 100, 0, 0, 0},
		{"above target", 150, 100, 50, 10, 0},
		{"plain gap", 40, 100, 0, 0, 60},
		{"raised to minimum", 90, 100, 25, 0, 25},
		{"minimum below gap", 40, 100, 25, 0, 60},
		{"rounded to lot", 40, 100, 0, 25, 75},
		{"exact lot multiple", 50, 100, 0, 25, 50},
		{"minimum then lot", 95, 100, 30, 20, 40},
		{"fractional lot", 0, 1, 0, 0.3, 1.2},
		{"nan target", 0, math.NaN(), 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RecommendOrderQuantity(tc.current, tc.target, tc.moq, tc.lot), 1e-9)
		})
	}
}
