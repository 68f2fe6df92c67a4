package replenishment

import "math"

const epsilon = 1e-9

// RecommendOrderQuantity returns the quantity that lifts current stock to
// target. A positive quantity is raised to the minimum order quantity and
// then rounded up to a multiple of lotSize; zero or negative parameters are
// ignored.
func RecommendOrderQuantity(current, target, minOrderQty, lotSize float64) float64 {
	qty := target - current
	if math.IsNaN(qty) || qty <= epsilon {
		return 0
	}
	if minOrderQty > 0 && qty < minOrderQty {
		qty = minOrderQty
	}
	if lotSize > 0 {
		qty = math.Ceil(qty/lotSize-epsilon) * lotSize
	}
	return qty
}
