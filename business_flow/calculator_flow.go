package businessflow

import (
	"context"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/MyData-Folk/tariff-vision/utils"
)

// CalculatorFlow answers the grid calculator's "what would category X cost
// if the reference category costs B" questions. No daily rates are involved:
// the caller supplies the base rate directly.
type CalculatorFlow interface {
	CategoryRate(ctx context.Context, req *dto.CategoryRateRequest, metadata *ClientMetadata) (*dto.ReferenceRateResponse, error)
	PlanRate(ctx context.Context, req *dto.PlanRateRequest, metadata *ClientMetadata) (*dto.ReferenceRateResponse, error)
}

type CalculatorFlowImpl struct {
	snapshots RuleSnapshotProvider
}

func NewCalculatorFlow(snapshots RuleSnapshotProvider) CalculatorFlow {
	return &CalculatorFlowImpl{snapshots: snapshots}
}

func (cf *CalculatorFlowImpl) CategoryRate(ctx context.Context, req *dto.CategoryRateRequest, metadata *ClientMetadata) (*dto.ReferenceRateResponse, error) {
	if req == nil {
		return nil, NewBusinessError("CATEGORY_RATE_VALIDATION_FAILED", "Category rate request is empty", ErrCategoryNotFound)
	}

	rs, err := cf.ruleSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rate := pricing.CalculateCategoryRate(req.BaseRate, req.CategoryID, req.ReferenceCategoryID, rs)
	return &dto.ReferenceRateResponse{
		Message: "Category rate calculated successfully",
		Rate:    rate,
	}, nil
}

func (cf *CalculatorFlowImpl) PlanRate(ctx context.Context, req *dto.PlanRateRequest, metadata *ClientMetadata) (*dto.ReferenceRateResponse, error) {
	if req == nil {
		return nil, NewBusinessError("PLAN_RATE_VALIDATION_FAILED", "Plan rate request is empty", ErrPlanNotFound)
	}

	rs, err := cf.ruleSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rate := pricing.CalculatePlanRate(req.BaseRate, req.PlanID, req.ReferencePlanID, rs)
	return &dto.ReferenceRateResponse{
		Message: "Plan rate calculated successfully",
		Rate:    rate,
	}, nil
}

// ruleSnapshot fetches rules only; the single-day range keeps the daily-rate
// query trivial since reference math never reads it.
func (cf *CalculatorFlowImpl) ruleSnapshot(ctx context.Context) (pricing.RuleSet, error) {
	today := utils.UTCNow()
	return cf.snapshots.Snapshot(ctx, today, today)
}
