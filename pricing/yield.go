package pricing

import "math"

// CalculateOptimizedPrice maps an occupancy percentage to a price derived
// from the competitor's, per the yield tier table. Tiers are evaluated
// top-down and the first match wins, so both boundaries select the
// higher-occupancy branch:
//
//	occupancy >= 80  →  95% of competitor price
//	occupancy >= 60  →  85% of competitor price
//	otherwise        →  70% of competitor price
//
// The result is rounded to the nearest integer currency unit.
func CalculateOptimizedPrice(occupancyRatePercent, competitorPrice float64) float64 {
	var factor float64
	switch {
	case occupancyRatePercent >= 80:
		factor = 0.95
	case occupancyRatePercent >= 60:
		factor = 0.85
	default:
		factor = 0.70
	}
	return math.Round(competitorPrice * factor)
}
