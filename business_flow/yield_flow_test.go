package businessflow_test

import (
	"context"
	"testing"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYieldFlow(env *flowEnv) businessflow.YieldFlow {
	return businessflow.NewYieldFlow(env.occupancy, env.pricingConfig)
}

func TestYieldFlowOptimize(t *testing.T) {
	env := newFlowEnv()
	flow := newYieldFlow(env)

	cases := []struct {
		occupancy float64
		expected  float64
	}{
		{85, 190}, // >= 80 → 95%
		{80, 190},
		{70, 170}, // >= 60 → 85%
		{60, 170},
		{30, 140}, // else → 70%
	}
	for _, tc := range cases {
		resp, err := flow.Optimize(context.Background(), &dto.OptimizePriceRequest{
			OccupancyRate:   tc.occupancy,
			CompetitorPrice: 200,
		}, testMetadata())
		require.NoError(t, err)
		assert.InDelta(t, tc.expected, resp.OptimizedPrice, 1e-9, "occupancy %.0f", tc.occupancy)
		assert.Equal(t, "EUR", resp.Currency)
	}
}

func TestYieldFlowUpsertAndListSnapshots(t *testing.T) {
	env := newFlowEnv()
	flow := newYieldFlow(env)

	resp, err := flow.UpsertSnapshot(context.Background(), &dto.UpsertOccupancySnapshotRequest{
		Date:            "2025-06-07",
		OccupancyRate:   82.5,
		CompetitorPrice: 200,
		Source:          "channel-manager",
	}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-07", resp.Snapshot.Date)
	assert.InDelta(t, 190, resp.Snapshot.OptimizedPrice, 1e-9)
	assert.Equal(t, "channel-manager", resp.Snapshot.Source)

	// Same day again replaces the observation instead of duplicating it.
	_, err = flow.UpsertSnapshot(context.Background(), &dto.UpsertOccupancySnapshotRequest{
		Date:            "2025-06-07",
		OccupancyRate:   55,
		CompetitorPrice: 180,
	}, testMetadata())
	require.NoError(t, err)

	list, err := flow.ListSnapshots(context.Background(), "2025-06-01", "2025-06-30", testMetadata())
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.InDelta(t, 55, list.Items[0].OccupancyRate, 1e-9)
	assert.InDelta(t, 126, list.Items[0].OptimizedPrice, 1e-9) // 180 * 0.70
}

func TestYieldFlowListSnapshotsInvalidRange(t *testing.T) {
	env := newFlowEnv()
	flow := newYieldFlow(env)

	_, err := flow.ListSnapshots(context.Background(), "2025-06-30", "2025-06-01", testMetadata())
	assert.True(t, businessflow.IsStartDateAfterEndDate(err))

	_, err = flow.ListSnapshots(context.Background(), "not-a-date", "2025-06-01", testMetadata())
	assert.True(t, businessflow.IsInvalidDate(err))
}

func TestYieldFlowUpsertInvalidDate(t *testing.T) {
	env := newFlowEnv()
	flow := newYieldFlow(env)

	_, err := flow.UpsertSnapshot(context.Background(), &dto.UpsertOccupancySnapshotRequest{
		Date:            "07/06/2025",
		OccupancyRate:   50,
		CompetitorPrice: 100,
	}, testMetadata())
	assert.True(t, businessflow.IsInvalidDate(err))
}
