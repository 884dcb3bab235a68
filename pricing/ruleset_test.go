package pricing_test

import (
	"testing"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSet(t *testing.T) {
	rs := pricing.NewRuleSet(
		[]models.DailyRate{{Date: day("2025-06-02"), OTARate: 100}},
		[]models.CategoryRule{
			{ID: 1, CategoryID: 7},
			{ID: 2, CategoryID: 7}, // duplicate; first match wins
		},
		[]models.PlanRule{{ID: 1, PlanID: 3}},
		[]models.PartnerAdjustment{
			{ID: 30, PartnerID: 1},
			{ID: 10, PartnerID: 1},
			{ID: 20, PartnerID: 2},
		},
	)

	t.Run("DailyRatesIndexedByDay", func(t *testing.T) {
		_, ok := rs.DailyRates["2025-06-02"]
		assert.True(t, ok)
	})

	t.Run("CategoryRuleFirstMatch", func(t *testing.T) {
		rule := rs.CategoryRule(7)
		require.NotNil(t, rule)
		assert.Equal(t, uint(1), rule.ID)
		assert.Nil(t, rs.CategoryRule(99))
	})

	t.Run("PlanRuleLookup", func(t *testing.T) {
		require.NotNil(t, rs.PlanRule(3))
		assert.Nil(t, rs.PlanRule(99))
	})

	t.Run("AdjustmentsForPartnerSortedByID", func(t *testing.T) {
		adjustments := rs.AdjustmentsForPartner(1)
		require.Len(t, adjustments, 2)
		assert.Equal(t, uint(10), adjustments[0].ID)
		assert.Equal(t, uint(30), adjustments[1].ID)
	})

	t.Run("AdjustmentsByIDsIgnoresSelectionOrder", func(t *testing.T) {
		adjustments := rs.AdjustmentsByIDs([]uint{30, 10})
		require.Len(t, adjustments, 2)
		assert.Equal(t, uint(10), adjustments[0].ID)
		assert.Equal(t, uint(30), adjustments[1].ID)
	})

	t.Run("AdjustmentsByIDsSkipsUnknown", func(t *testing.T) {
		adjustments := rs.AdjustmentsByIDs([]uint{10, 999})
		require.Len(t, adjustments, 1)
		assert.Equal(t, uint(10), adjustments[0].ID)
	})
}
