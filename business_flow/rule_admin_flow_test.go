package businessflow_test

import (
	"context"
	"testing"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuleAdminFlow(env *flowEnv) businessflow.RuleAdminFlow {
	return businessflow.NewRuleAdminFlow(
		env.categoryRules,
		env.planRules,
		env.adjustments,
		env.categories,
		env.plans,
		env.partners,
		env.snapshots,
	)
}

func TestRuleAdminFlowSaveCategoryRule(t *testing.T) {
	env := newFlowEnv()
	category := env.seedCategory("standard")
	flow := newRuleAdminFlow(env)

	resp, err := flow.SaveCategoryRule(context.Background(), &dto.SaveCategoryRuleRequest{
		CategoryID:        category.ID,
		FormulaType:       "multiplicative",
		FormulaMultiplier: 1.2,
		FormulaOffset:     10,
	}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, category.ID, resp.Rule.CategoryID)
	assert.Equal(t, "multiplicative", resp.Rule.FormulaType)
	// BaseSource defaults to the OTA column when omitted.
	assert.Equal(t, models.BaseSourceOTA, resp.Rule.BaseSource)
	assert.Equal(t, category.Name, resp.Rule.CategoryName)
	firstID := resp.Rule.ID

	// Saving again replaces the existing rule in place.
	resp, err = flow.SaveCategoryRule(context.Background(), &dto.SaveCategoryRuleRequest{
		CategoryID:        category.ID,
		FormulaType:       "fixed",
		FormulaOffset:     99,
		BaseSource:        models.BaseSourceTravco,
	}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, firstID, resp.Rule.ID)
	assert.Equal(t, "fixed", resp.Rule.FormulaType)
	assert.Equal(t, models.BaseSourceTravco, resp.Rule.BaseSource)

	list, err := flow.ListCategoryRules(context.Background(), testMetadata())
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestRuleAdminFlowSaveCategoryRuleValidation(t *testing.T) {
	env := newFlowEnv()
	category := env.seedCategory("standard")
	flow := newRuleAdminFlow(env)

	_, err := flow.SaveCategoryRule(context.Background(), &dto.SaveCategoryRuleRequest{
		CategoryID:  category.ID,
		FormulaType: "exponential",
	}, testMetadata())
	assert.True(t, businessflow.IsInvalidFormulaType(err))

	_, err = flow.SaveCategoryRule(context.Background(), &dto.SaveCategoryRuleRequest{
		CategoryID:  99,
		FormulaType: "multiplicative",
	}, testMetadata())
	assert.True(t, businessflow.IsCategoryNotFound(err))
}

func TestRuleAdminFlowDeleteCategoryRule(t *testing.T) {
	env := newFlowEnv()
	category := env.seedCategory("standard")
	flow := newRuleAdminFlow(env)

	resp, err := flow.SaveCategoryRule(context.Background(), &dto.SaveCategoryRuleRequest{
		CategoryID:  category.ID,
		FormulaType: "additive",
	}, testMetadata())
	require.NoError(t, err)

	_, err = flow.DeleteCategoryRule(context.Background(), resp.Rule.ID, testMetadata())
	require.NoError(t, err)

	_, err = flow.DeleteCategoryRule(context.Background(), resp.Rule.ID, testMetadata())
	assert.True(t, businessflow.IsCategoryRuleNotFound(err))
}

func TestRuleAdminFlowSavePlanRulePreservesStepOrder(t *testing.T) {
	env := newFlowEnv()
	plan := env.seedPlan("flexible", "Tarif Flexible")
	flow := newRuleAdminFlow(env)

	resp, err := flow.SavePlanRule(context.Background(), &dto.SavePlanRuleRequest{
		PlanID: plan.ID,
		Steps: []dto.PlanStepDTO{
			{Type: "percentage", Value: 15},
			{Type: "add", Value: 5},
			{Type: "multiply", Value: 0.9},
		},
	}, testMetadata())
	require.NoError(t, err)
	require.Len(t, resp.Rule.Steps, 3)
	assert.Equal(t, "percentage", resp.Rule.Steps[0].Type)
	assert.Equal(t, "add", resp.Rule.Steps[1].Type)
	assert.Equal(t, "multiply", resp.Rule.Steps[2].Type)
	assert.Equal(t, plan.Name, resp.Rule.PlanName)

	_, err = flow.SavePlanRule(context.Background(), &dto.SavePlanRuleRequest{
		PlanID: plan.ID,
		Steps:  []dto.PlanStepDTO{{Type: "modulo", Value: 3}},
	}, testMetadata())
	assert.True(t, businessflow.IsInvalidStepType(err))
}

func TestRuleAdminFlowAdjustments(t *testing.T) {
	env := newFlowEnv()
	partner := env.seedPartner("Booking", models.PartnerChannelOTA)
	other := env.seedPartner("Expedia", models.PartnerChannelOTA)
	flow := newRuleAdminFlow(env)

	resp, err := flow.CreateAdjustment(context.Background(), &dto.CreatePartnerAdjustmentRequest{
		PartnerID:       partner.ID,
		AdjustmentType:  "commission",
		AdjustmentValue: "18",
		Description:     "Commission Booking",
	}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "commission", resp.Adjustment.AdjustmentType)
	assert.Equal(t, "checkbox", resp.Adjustment.UIControl)
	assert.Equal(t, partner.Name, resp.Adjustment.PartnerName)

	_, err = flow.CreateAdjustment(context.Background(), &dto.CreatePartnerAdjustmentRequest{
		PartnerID:       other.ID,
		AdjustmentType:  "fixed",
		AdjustmentValue: "-5",
		DefaultChecked:  utils.ToPtr(true),
	}, testMetadata())
	require.NoError(t, err)

	// partnerID filters; zero means everything.
	scoped, err := flow.ListAdjustments(context.Background(), partner.ID, testMetadata())
	require.NoError(t, err)
	assert.Len(t, scoped.Items, 1)

	all, err := flow.ListAdjustments(context.Background(), 0, testMetadata())
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = flow.DeleteAdjustment(context.Background(), resp.Adjustment.ID, testMetadata())
	require.NoError(t, err)
	_, err = flow.DeleteAdjustment(context.Background(), resp.Adjustment.ID, testMetadata())
	assert.True(t, businessflow.IsAdjustmentNotFound(err))

	_, err = flow.CreateAdjustment(context.Background(), &dto.CreatePartnerAdjustmentRequest{
		PartnerID:       partner.ID,
		AdjustmentType:  "surcharge",
		AdjustmentValue: "5",
	}, testMetadata())
	assert.True(t, businessflow.IsAdjustmentNotFound(err))
}

func TestRuleAdminFlowCatalogLists(t *testing.T) {
	env := newFlowEnv()
	env.seedCategory("standard")
	env.seedCategory("deluxe")
	env.seedPlan("flexible", "Tarif Flexible")
	partner := env.seedPartner("Booking", models.PartnerChannelOTA)
	flow := newRuleAdminFlow(env)

	categories, err := flow.ListCategories(context.Background(), testMetadata())
	require.NoError(t, err)
	assert.Len(t, categories.Items, 2)

	plans, err := flow.ListPlans(context.Background(), testMetadata())
	require.NoError(t, err)
	assert.Len(t, plans.Items, 1)

	partners, err := flow.ListPartners(context.Background(), testMetadata())
	require.NoError(t, err)
	require.Len(t, partners.Items, 1)
	assert.Equal(t, partner.Name, partners.Items[0].Name)
	assert.Equal(t, models.PartnerChannelOTA, partners.Items[0].Channel)
}

func TestRuleAdminFlowRuleMutationIsVisibleToCalculations(t *testing.T) {
	env := newFlowEnv()
	category := env.seedCategory("standard")
	plan := env.seedPlan("flexible", "Tarif Flexible")
	partner := env.seedPartner("Booking", models.PartnerChannelOTA)
	env.seedDailyRate("2025-06-04", 100, 80)

	adminFlow := newRuleAdminFlow(env)
	tariffFlow := newTariffFlow(env)

	before, err := tariffFlow.Calculate(context.Background(), &dto.CalculateTariffRequest{
		Date: "2025-06-04", CategoryID: category.ID, PlanID: plan.ID, PartnerID: partner.ID,
	}, testMetadata())
	require.NoError(t, err)
	assert.InDelta(t, 100, before.Result.FinalRate, 1e-9)

	_, err = adminFlow.SaveCategoryRule(context.Background(), &dto.SaveCategoryRuleRequest{
		CategoryID:        category.ID,
		FormulaType:       "multiplicative",
		FormulaMultiplier: 2,
	}, testMetadata())
	require.NoError(t, err)

	after, err := tariffFlow.Calculate(context.Background(), &dto.CalculateTariffRequest{
		Date: "2025-06-04", CategoryID: category.ID, PlanID: plan.ID, PartnerID: partner.ID,
	}, testMetadata())
	require.NoError(t, err)
	assert.InDelta(t, 200, after.Result.FinalRate, 1e-9)
}
