package businessflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSnapshotProviderSnapshot(t *testing.T) {
	env := newFlowEnv()
	env.seedDailyRate("2025-06-04", 100, 80)
	env.seedDailyRate("2025-06-05", 110, 90)
	env.seedDailyRate("2025-07-01", 300, 250) // outside the requested range
	require.NoError(t, env.categoryRules.Save(context.Background(), &models.CategoryRule{
		CategoryID:        1,
		FormulaType:       models.FormulaMultiplicative,
		FormulaMultiplier: 1.2,
	}))
	require.NoError(t, env.planRules.Save(context.Background(), &models.PlanRule{
		PlanID: 1,
		Steps:  models.PlanSteps{{Type: models.StepAdd, Value: models.NewStepValue(5)}},
	}))
	require.NoError(t, env.adjustments.Save(context.Background(), &models.PartnerAdjustment{
		PartnerID:       1,
		AdjustmentType:  models.AdjustmentFixed,
		AdjustmentValue: "3",
	}))

	from := mustDay(t, "2025-06-01")
	to := mustDay(t, "2025-06-30")
	rs, err := env.snapshots.Snapshot(context.Background(), from, to)
	require.NoError(t, err)

	assert.Len(t, rs.DailyRates, 2)
	assert.Contains(t, rs.DailyRates, "2025-06-04")
	assert.Contains(t, rs.DailyRates, "2025-06-05")
	assert.NotContains(t, rs.DailyRates, "2025-07-01")

	assert.Len(t, rs.CategoryRules, 1)
	assert.Len(t, rs.PlanRules, 1)
	assert.Len(t, rs.PartnerAdjustments, 1)
}

func TestRuleSnapshotProviderWithoutRedis(t *testing.T) {
	env := newFlowEnv()

	// With no Redis client all maintenance operations are no-ops and reads
	// go straight to the database.
	assert.NoError(t, env.snapshots.Invalidate(context.Background()))
	assert.NoError(t, env.snapshots.Refresh(context.Background()))

	day := mustDay(t, "2025-06-04")
	rs, err := env.snapshots.Snapshot(context.Background(), day, day)
	require.NoError(t, err)
	assert.Empty(t, rs.DailyRates)
	assert.Empty(t, rs.CategoryRules)
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := utils.ParseDay(s)
	require.NoError(t, err)
	return day
}
