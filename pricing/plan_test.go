package pricing_test

import (
	"testing"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/stretchr/testify/assert"
)

func step(t models.PlanStepType, v float64) models.PlanStep {
	return models.PlanStep{Type: t, Value: models.StepValue{Number: v, Valid: true}}
}

func planRule(steps ...models.PlanStep) *models.PlanRule {
	return &models.PlanRule{Steps: models.PlanSteps(steps)}
}

func TestApplyPlanRule(t *testing.T) {
	t.Run("NilRuleIsIdentity", func(t *testing.T) {
		assert.Equal(t, 150.0, pricing.ApplyPlanRule(150, nil))
	})

	t.Run("EmptyStepsIsIdentity", func(t *testing.T) {
		assert.Equal(t, 150.0, pricing.ApplyPlanRule(150, planRule()))
	})

	t.Run("StepOrderMatters", func(t *testing.T) {
		multiplyThenAdd := planRule(step(models.StepMultiply, 2), step(models.StepAdd, 10))
		addThenMultiply := planRule(step(models.StepAdd, 10), step(models.StepMultiply, 2))

		assert.InDelta(t, 210, pricing.ApplyPlanRule(100, multiplyThenAdd), 1e-9)
		assert.InDelta(t, 220, pricing.ApplyPlanRule(100, addThenMultiply), 1e-9)
	})

	t.Run("SubtractAndDivide", func(t *testing.T) {
		rule := planRule(step(models.StepSubtract, 20), step(models.StepDivide, 4))
		assert.InDelta(t, 20, pricing.ApplyPlanRule(100, rule), 1e-9)
	})

	t.Run("DivideByZeroIsSkipped", func(t *testing.T) {
		rule := planRule(step(models.StepDivide, 0))
		assert.InDelta(t, 50, pricing.ApplyPlanRule(50, rule), 1e-9)
	})

	t.Run("Percentage", func(t *testing.T) {
		rule := planRule(step(models.StepPercentage, 15))
		assert.InDelta(t, 115, pricing.ApplyPlanRule(100, rule), 1e-9)

		negative := planRule(step(models.StepPercentage, -10))
		assert.InDelta(t, 90, pricing.ApplyPlanRule(100, negative), 1e-9)
	})

	t.Run("InvalidStepValueIsSkipped", func(t *testing.T) {
		rule := &models.PlanRule{Steps: models.PlanSteps{
			{Type: models.StepMultiply, Value: models.StepValue{}},
			step(models.StepAdd, 10),
		}}
		assert.InDelta(t, 110, pricing.ApplyPlanRule(100, rule), 1e-9)
	})

	t.Run("UnknownStepTypeIsSkipped", func(t *testing.T) {
		rule := planRule(models.PlanStep{
			Type:  models.PlanStepType("exponentiate"),
			Value: models.StepValue{Number: 2, Valid: true},
		})
		assert.InDelta(t, 100, pricing.ApplyPlanRule(100, rule), 1e-9)
	})

	t.Run("Idempotence", func(t *testing.T) {
		rule := planRule(step(models.StepMultiply, 1.15), step(models.StepAdd, 7.5))
		first := pricing.ApplyPlanRule(133.7, rule)
		second := pricing.ApplyPlanRule(133.7, rule)
		assert.Equal(t, first, second)
	})
}
