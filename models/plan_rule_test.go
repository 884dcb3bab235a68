package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyData-Folk/tariff-vision/models"
)

func TestStepValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.StepValue
	}{
		{"json number", `1.15`, models.NewStepValue(1.15)},
		{"integer number", `5`, models.NewStepValue(5)},
		{"numeric string", `"1.2"`, models.NewStepValue(1.2)},
		{"negative numeric string", `"-3"`, models.NewStepValue(-3)},
		{"junk string", `"dix pourcent"`, models.StepValue{}},
		{"boolean", `true`, models.StepValue{}},
		{"object", `{"n": 1}`, models.StepValue{}},
		{"null", `null`, models.StepValue{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v models.StepValue
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestStepValueMarshalJSON(t *testing.T) {
	data, err := json.Marshal(models.NewStepValue(1.1))
	require.NoError(t, err)
	assert.Equal(t, "1.1", string(data))

	data, err = json.Marshal(models.StepValue{Number: 99, Valid: false})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestNormalizeStepsArray(t *testing.T) {
	raw := []byte(`[{"type":"multiply","value":1.1},{"type":"add","value":"5"}]`)

	steps := models.NormalizeSteps(raw)
	require.Len(t, steps, 2)
	assert.Equal(t, models.StepMultiply, steps[0].Type)
	assert.Equal(t, models.NewStepValue(1.1), steps[0].Value)
	assert.Equal(t, models.StepAdd, steps[1].Type)
	assert.Equal(t, models.NewStepValue(5), steps[1].Value)
}

func TestNormalizeStepsKeyedObject(t *testing.T) {
	// Legacy rows stored the list keyed by position; keys "10" and "2" must
	// sort numerically, not lexically.
	raw := []byte(`{
		"10": {"type":"percentage","value":15},
		"2":  {"type":"add","value":5},
		"1":  {"type":"multiply","value":1.1}
	}`)

	steps := models.NormalizeSteps(raw)
	require.Len(t, steps, 3)
	assert.Equal(t, models.StepMultiply, steps[0].Type)
	assert.Equal(t, models.StepAdd, steps[1].Type)
	assert.Equal(t, models.StepPercentage, steps[2].Type)
}

func TestNormalizeStepsJunk(t *testing.T) {
	assert.Empty(t, models.NormalizeSteps([]byte(`"not steps"`)))
	assert.Empty(t, models.NormalizeSteps([]byte(`42`)))
	assert.Empty(t, models.NormalizeSteps([]byte(``)))
}

func TestPlanStepsScan(t *testing.T) {
	var steps models.PlanSteps
	require.NoError(t, steps.Scan([]byte(`[{"type":"multiply","value":2}]`)))
	require.Len(t, steps, 1)
	assert.Equal(t, models.StepMultiply, steps[0].Type)

	require.NoError(t, steps.Scan(`[{"type":"divide","value":2}]`))
	require.Len(t, steps, 1)
	assert.Equal(t, models.StepDivide, steps[0].Type)

	require.NoError(t, steps.Scan(nil))
	assert.Empty(t, steps)

	assert.Error(t, steps.Scan(12345))
}

func TestPlanStepsValue(t *testing.T) {
	var nilSteps models.PlanSteps
	v, err := nilSteps.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v.([]byte)))

	steps := models.PlanSteps{{Type: models.StepAdd, Value: models.NewStepValue(5)}}
	v, err = steps.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"add","value":5}]`, string(v.([]byte)))
}

func TestCategoryFormulaTypeValid(t *testing.T) {
	assert.True(t, models.FormulaMultiplicative.Valid())
	assert.True(t, models.FormulaAdditive.Valid())
	assert.True(t, models.FormulaFixed.Valid())
	assert.False(t, models.CategoryFormulaType("exponential").Valid())

	_, err := models.CategoryFormulaType("exponential").Value()
	assert.Error(t, err)

	var ft models.CategoryFormulaType
	require.NoError(t, ft.Scan("multiplicative"))
	assert.Equal(t, models.FormulaMultiplicative, ft)
}

func TestAdjustmentTypeValid(t *testing.T) {
	assert.True(t, models.AdjustmentPercentage.Valid())
	assert.True(t, models.AdjustmentCommission.Valid())
	assert.True(t, models.AdjustmentPromoFilter.Valid())
	assert.False(t, models.AdjustmentType("surcharge").Valid())

	var at models.AdjustmentType
	require.NoError(t, at.Scan([]byte("fixed")))
	assert.Equal(t, models.AdjustmentFixed, at)
}
