package businessflow_test

import (
	"context"
	"testing"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyRateFlowUpsertAndList(t *testing.T) {
	env := newFlowEnv()
	flow := businessflow.NewDailyRateFlow(env.dailyRates)

	resp, err := flow.Upsert(context.Background(), &dto.UpsertDailyRateRequest{
		Date:       "2025-06-04",
		OTARate:    150,
		TravcoRate: 130,
	}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", resp.Rate.Date)
	assert.InDelta(t, 150, resp.Rate.OTARate, 1e-9)

	// Replacing the same day keeps a single row.
	_, err = flow.Upsert(context.Background(), &dto.UpsertDailyRateRequest{
		Date:       "2025-06-04",
		OTARate:    160,
		TravcoRate: 140,
	}, testMetadata())
	require.NoError(t, err)

	list, err := flow.List(context.Background(), "2025-06-01", "2025-06-30", testMetadata())
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.InDelta(t, 160, list.Items[0].OTARate, 1e-9)
	assert.InDelta(t, 140, list.Items[0].TravcoRate, 1e-9)
}

func TestDailyRateFlowUpsertFeedsCalculations(t *testing.T) {
	env := newFlowEnv()
	category := env.seedCategory("standard")
	plan := env.seedPlan("flexible", "Tarif Flexible")
	partner := env.seedPartner("Booking", models.PartnerChannelOTA)

	rateFlow := businessflow.NewDailyRateFlow(env.dailyRates)
	tariffFlow := newTariffFlow(env)

	_, err := rateFlow.Upsert(context.Background(), &dto.UpsertDailyRateRequest{
		Date:       "2025-06-04",
		OTARate:    200,
		TravcoRate: 170,
	}, testMetadata())
	require.NoError(t, err)

	// Daily rates are never cached, so the calculation sees the new rate
	// immediately.
	resp, err := tariffFlow.Calculate(context.Background(), &dto.CalculateTariffRequest{
		Date: "2025-06-04", CategoryID: category.ID, PlanID: plan.ID, PartnerID: partner.ID,
	}, testMetadata())
	require.NoError(t, err)
	assert.InDelta(t, 200, resp.Result.BaseRate, 1e-9)
}

func TestDailyRateFlowInvalidInput(t *testing.T) {
	env := newFlowEnv()
	flow := businessflow.NewDailyRateFlow(env.dailyRates)

	_, err := flow.Upsert(context.Background(), &dto.UpsertDailyRateRequest{
		Date: "04-06-2025", OTARate: 150,
	}, testMetadata())
	assert.True(t, businessflow.IsInvalidDate(err))

	_, err = flow.List(context.Background(), "2025-06-30", "2025-06-01", testMetadata())
	assert.True(t, businessflow.IsStartDateAfterEndDate(err))
}
