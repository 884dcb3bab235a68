package pricing

import (
	"github.com/MyData-Folk/tariff-vision/models"
)

// ApplyCategoryRule transforms a base rate through a category rule.
//
// A nil rule is an identity transform: a category without a rule is priced
// at the base rate. An unrecognized formula type falls back to the
// multiplicative formula rather than failing, so a calculation always yields
// a number.
func ApplyCategoryRule(baseRate float64, rule *models.CategoryRule) float64 {
	if rule == nil {
		return baseRate
	}

	switch rule.FormulaType {
	case models.FormulaAdditive:
		return baseRate + rule.FormulaOffset
	case models.FormulaFixed:
		// A fixed rule pins an absolute price; the day's base rate is
		// intentionally discarded.
		return rule.FormulaOffset
	case models.FormulaMultiplicative:
		return baseRate*rule.FormulaMultiplier + rule.FormulaOffset
	default:
		return baseRate*rule.FormulaMultiplier + rule.FormulaOffset
	}
}
