package pricing

import (
	"math"
	"strconv"

	"github.com/MyData-Folk/tariff-vision/models"
)

// ApplyPartnerAdjustment transforms the running rate through one partner
// adjustment.
//
// Adjustment values are string-encoded as persisted by the dashboard; a
// value that does not parse to a finite number degrades to an identity
// transform. Commission keeps the inherited markdown convention, reducing
// the running rate by the commission percentage. Promo filters are identity
// here: which adjustments apply was decided upstream by id selection.
func ApplyPartnerAdjustment(baseRate float64, adjustment models.PartnerAdjustment) float64 {
	value, err := strconv.ParseFloat(adjustment.AdjustmentValue, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return baseRate
	}

	switch adjustment.AdjustmentType {
	case models.AdjustmentPercentage:
		return baseRate * (1 + value/100)
	case models.AdjustmentFixed:
		return baseRate + value
	case models.AdjustmentCommission:
		return baseRate * (1 - value/100)
	case models.AdjustmentPromoFilter:
		return baseRate
	default:
		return baseRate
	}
}
