package pricing

import (
	"github.com/MyData-Folk/tariff-vision/models"
)

// ApplyPlanRule folds a plan rule's ordered steps over the base rate.
//
// Steps apply strictly left to right; the stored order is semantically
// significant. Two shapes of malformed step degrade instead of erroring:
// a step whose value never parsed to a finite number is skipped entirely,
// and a divide step with value exactly 0 is skipped to keep the accumulator
// finite. A nil rule is an identity transform.
func ApplyPlanRule(baseRate float64, rule *models.PlanRule) float64 {
	if rule == nil {
		return baseRate
	}

	acc := baseRate
	for _, step := range rule.Steps {
		if !step.Value.Valid {
			continue
		}
		v := step.Value.Number
		switch step.Type {
		case models.StepMultiply:
			acc *= v
		case models.StepAdd:
			acc += v
		case models.StepSubtract:
			acc -= v
		case models.StepDivide:
			if v == 0 {
				continue
			}
			acc /= v
		case models.StepPercentage:
			acc *= 1 + v/100
		}
	}
	return acc
}
