package pricing_test

import (
	"testing"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCategoryRate(t *testing.T) {
	rs := pricing.NewRuleSet(nil, []models.CategoryRule{{
		ID:                1,
		CategoryID:        2,
		FormulaType:       models.FormulaMultiplicative,
		FormulaMultiplier: 1.5,
		FormulaOffset:     10,
	}}, nil, nil)

	t.Run("ReferenceShortCircuit", func(t *testing.T) {
		// Same id as reference returns the base rate untouched whatever
		// rules exist.
		assert.Equal(t, 100.0, pricing.CalculateCategoryRate(100, 2, 2, rs))
		assert.Equal(t, 100.0, pricing.CalculateCategoryRate(100, 9, 9, pricing.RuleSet{}))
	})

	t.Run("AppliesRequestedCategoryRule", func(t *testing.T) {
		assert.InDelta(t, 160, pricing.CalculateCategoryRate(100, 2, 1, rs), 1e-9)
	})

	t.Run("MissingRuleReturnsBaseRate", func(t *testing.T) {
		assert.Equal(t, 100.0, pricing.CalculateCategoryRate(100, 5, 1, rs))
	})
}

func TestCalculatePlanRate(t *testing.T) {
	rs := pricing.NewRuleSet(nil, nil, []models.PlanRule{{
		ID:     1,
		PlanID: 4,
		Steps:  models.PlanSteps{step(models.StepMultiply, 2)},
	}}, nil)

	t.Run("ReferenceShortCircuit", func(t *testing.T) {
		assert.Equal(t, 100.0, pricing.CalculatePlanRate(100, 4, 4, rs))
	})

	t.Run("AppliesRequestedPlanRule", func(t *testing.T) {
		assert.InDelta(t, 200, pricing.CalculatePlanRate(100, 4, 1, rs), 1e-9)
	})

	t.Run("MissingRuleReturnsBaseRate", func(t *testing.T) {
		assert.Equal(t, 100.0, pricing.CalculatePlanRate(100, 8, 1, rs))
	})
}
