package pricing_test

import (
	"testing"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := utils.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolveBaseRate(t *testing.T) {
	rates := map[string]models.DailyRate{
		"2025-06-02": {Date: day("2025-06-02"), OTARate: 150, TravcoRate: 130},
	}

	t.Run("OverrideWins", func(t *testing.T) {
		override := 99.0
		assert.Equal(t, 99.0, pricing.ResolveBaseRate(day("2025-06-02"), &override, rates))
	})

	t.Run("StoredRate", func(t *testing.T) {
		assert.Equal(t, 150.0, pricing.ResolveBaseRate(day("2025-06-02"), nil, rates))
	})

	t.Run("WeekdayFallback", func(t *testing.T) {
		// 2025-06-03 is a Tuesday with no stored rate.
		assert.Equal(t, float64(pricing.WeekdayFallbackRate), pricing.ResolveBaseRate(day("2025-06-03"), nil, rates))
	})

	t.Run("WeekendFallback", func(t *testing.T) {
		// 2025-06-07 is a Saturday with no stored rate.
		assert.Equal(t, float64(pricing.WeekendFallbackRate), pricing.ResolveBaseRate(day("2025-06-07"), nil, rates))
	})
}

func TestCalculateTariff(t *testing.T) {
	t.Run("EndToEndWeekendNoStoredRate", func(t *testing.T) {
		rs := pricing.NewRuleSet(nil,
			[]models.CategoryRule{{
				ID:                1,
				CategoryID:        7,
				FormulaType:       models.FormulaMultiplicative,
				FormulaMultiplier: 1.2,
				FormulaOffset:     0,
			}},
			[]models.PlanRule{{
				ID:     1,
				PlanID: 3,
				Steps:  models.PlanSteps{step(models.StepPercentage, 15)},
			}},
			nil,
		)

		result := pricing.CalculateTariff(pricing.CalculationParams{
			Date:            day("2025-06-07"), // Saturday
			CategoryID:      7,
			PlanID:          3,
			PartnerID:       1,
			DiscountPercent: 10,
		}, rs)

		assert.InDelta(t, 140, result.BaseRate, 1e-9)
		assert.InDelta(t, 168, result.AfterCategoryRule, 1e-9)
		assert.InDelta(t, 193.2, result.AfterPlanRule, 1e-9)
		assert.InDelta(t, 193.2, result.AfterPartnerAdjustments, 1e-9)
		assert.InDelta(t, 173.88, result.FinalRate, 1e-9)

		// No partner adjustments applied, so no adjustment step surfaced.
		require.Len(t, result.Steps, 4)
		assert.Equal(t, "Tarif de base", result.Steps[0].Description)
		assert.Equal(t, "Après règle de catégorie", result.Steps[1].Description)
		assert.Equal(t, "Après règle de plan", result.Steps[2].Description)
		assert.Equal(t, "Après remise (10%)", result.Steps[3].Description)
		assert.InDelta(t, 173.88, result.Steps[3].Value, 1e-9)
	})

	t.Run("MissingRulesDegradeToIdentity", func(t *testing.T) {
		rs := pricing.NewRuleSet([]models.DailyRate{
			{Date: day("2025-06-02"), OTARate: 100},
		}, nil, nil, nil)

		result := pricing.CalculateTariff(pricing.CalculationParams{
			Date:       day("2025-06-02"),
			CategoryID: 42,
			PlanID:     42,
			PartnerID:  42,
		}, rs)

		assert.Equal(t, 100.0, result.BaseRate)
		assert.Equal(t, 100.0, result.FinalRate)
		assert.Len(t, result.Steps, 3)
	})

	t.Run("AdjustmentsApplyInAscendingIDOrder", func(t *testing.T) {
		// fixed +10 (id 5) then percentage +10% (id 9): (100+10)*1.1 = 121.
		// If selection order were honored instead, 100*1.1+10 = 120.
		rs := pricing.NewRuleSet([]models.DailyRate{
			{Date: day("2025-06-02"), OTARate: 100},
		}, nil, nil, []models.PartnerAdjustment{
			{ID: 9, PartnerID: 1, AdjustmentType: models.AdjustmentPercentage, AdjustmentValue: "10"},
			{ID: 5, PartnerID: 1, AdjustmentType: models.AdjustmentFixed, AdjustmentValue: "10"},
		})

		result := pricing.CalculateTariff(pricing.CalculationParams{
			Date:          day("2025-06-02"),
			PartnerID:     1,
			AdjustmentIDs: []uint{9, 5},
		}, rs)

		assert.InDelta(t, 121, result.FinalRate, 1e-9)
		require.Len(t, result.Steps, 4)
		assert.Equal(t, "Après ajustements partenaire", result.Steps[3].Description)
	})

	t.Run("NilSelectionAppliesAllPartnerAdjustments", func(t *testing.T) {
		rs := pricing.NewRuleSet([]models.DailyRate{
			{Date: day("2025-06-02"), OTARate: 100},
		}, nil, nil, []models.PartnerAdjustment{
			{ID: 1, PartnerID: 1, AdjustmentType: models.AdjustmentCommission, AdjustmentValue: "20"},
			{ID: 2, PartnerID: 2, AdjustmentType: models.AdjustmentFixed, AdjustmentValue: "999"},
		})

		result := pricing.CalculateTariff(pricing.CalculationParams{
			Date:      day("2025-06-02"),
			PartnerID: 1,
		}, rs)

		// Only partner 1's commission applies; partner 2's adjustment is untouched.
		assert.InDelta(t, 80, result.FinalRate, 1e-9)
	})

	t.Run("EmptySelectionAppliesNothing", func(t *testing.T) {
		rs := pricing.NewRuleSet([]models.DailyRate{
			{Date: day("2025-06-02"), OTARate: 100},
		}, nil, nil, []models.PartnerAdjustment{
			{ID: 1, PartnerID: 1, AdjustmentType: models.AdjustmentFixed, AdjustmentValue: "50"},
		})

		result := pricing.CalculateTariff(pricing.CalculationParams{
			Date:          day("2025-06-02"),
			PartnerID:     1,
			AdjustmentIDs: []uint{},
		}, rs)

		assert.Equal(t, 100.0, result.FinalRate)
		assert.Len(t, result.Steps, 3)
	})
}

func TestCalculatePeriodTariffs(t *testing.T) {
	rs := pricing.NewRuleSet([]models.DailyRate{
		{Date: day("2025-06-02"), OTARate: 100},
		{Date: day("2025-06-03"), OTARate: 110},
		// 2025-06-04 missing on purpose; Wednesday, so fallback 120.
	}, nil, nil, nil)

	params := pricing.CalculationParams{CategoryID: 1, PlanID: 1, PartnerID: 1}

	t.Run("ThreeDayRange", func(t *testing.T) {
		results := pricing.CalculatePeriodTariffs(params, day("2025-06-02"), day("2025-06-04"), rs)
		require.Len(t, results, 3)

		assert.Equal(t, 100.0, results["2025-06-02"].FinalRate)
		assert.Equal(t, 110.0, results["2025-06-03"].FinalRate)
		assert.Equal(t, 120.0, results["2025-06-04"].FinalRate)
	})

	t.Run("SingleDayRange", func(t *testing.T) {
		results := pricing.CalculatePeriodTariffs(params, day("2025-06-02"), day("2025-06-02"), rs)
		require.Len(t, results, 1)
	})

	t.Run("ReversedRangeIsEmpty", func(t *testing.T) {
		results := pricing.CalculatePeriodTariffs(params, day("2025-06-04"), day("2025-06-02"), rs)
		assert.Empty(t, results)
	})
}
