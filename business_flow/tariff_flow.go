package businessflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/config"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/MyData-Folk/tariff-vision/repository"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/xuri/excelize/v2"
)

// TariffFlow runs the tariff pipeline for a single date or a contiguous
// period, and exports period results as a spreadsheet.
type TariffFlow interface {
	Calculate(ctx context.Context, req *dto.CalculateTariffRequest, metadata *ClientMetadata) (*dto.CalculateTariffResponse, error)
	CalculatePeriod(ctx context.Context, req *dto.CalculatePeriodRequest, metadata *ClientMetadata) (*dto.CalculatePeriodResponse, error)
	ExportPeriod(ctx context.Context, req *dto.CalculatePeriodRequest, metadata *ClientMetadata) ([]byte, error)
}

type TariffFlowImpl struct {
	categoryRepo  repository.RoomCategoryRepository
	planRepo      repository.RatePlanRepository
	partnerRepo   repository.PartnerRepository
	snapshots     RuleSnapshotProvider
	pricingConfig *config.PricingConfig
}

func NewTariffFlow(
	categoryRepo repository.RoomCategoryRepository,
	planRepo repository.RatePlanRepository,
	partnerRepo repository.PartnerRepository,
	snapshots RuleSnapshotProvider,
	pricingConfig *config.PricingConfig,
) TariffFlow {
	return &TariffFlowImpl{
		categoryRepo:  categoryRepo,
		planRepo:      planRepo,
		partnerRepo:   partnerRepo,
		snapshots:     snapshots,
		pricingConfig: pricingConfig,
	}
}

func (tf *TariffFlowImpl) Calculate(ctx context.Context, req *dto.CalculateTariffRequest, metadata *ClientMetadata) (*dto.CalculateTariffResponse, error) {
	if req == nil {
		return nil, NewBusinessError("TARIFF_VALIDATION_FAILED", "Tariff request is empty", ErrInvalidDate)
	}

	date, err := utils.ParseDay(req.Date)
	if err != nil {
		return nil, NewBusinessError("TARIFF_VALIDATION_FAILED", "Invalid calculation date", ErrInvalidDate)
	}

	if err := tf.checkEntities(ctx, req.CategoryID, req.PlanID, req.PartnerID); err != nil {
		return nil, err
	}

	rs, err := tf.snapshots.Snapshot(ctx, date, date)
	if err != nil {
		return nil, err
	}

	params := pricing.CalculationParams{
		Date:             date,
		CategoryID:       req.CategoryID,
		PlanID:           req.PlanID,
		PartnerID:        req.PartnerID,
		BaseRateOverride: req.BaseRateOverride,
		DiscountPercent:  req.DiscountPercent,
		AdjustmentIDs:    req.AdjustmentIDs,
	}
	result := pricing.CalculateTariff(params, rs)

	return &dto.CalculateTariffResponse{
		Message: "Tariff calculated successfully",
		Result:  ToTariffResultDTO(date, result, tf.pricingConfig.Currency),
	}, nil
}

func (tf *TariffFlowImpl) CalculatePeriod(ctx context.Context, req *dto.CalculatePeriodRequest, metadata *ClientMetadata) (*dto.CalculatePeriodResponse, error) {
	results, err := tf.periodResults(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make(map[string]dto.TariffResultDTO, len(results))
	for day, result := range results {
		date, parseErr := utils.ParseDay(day)
		if parseErr != nil {
			continue
		}
		out[day] = ToTariffResultDTO(date, result, tf.pricingConfig.Currency)
	}

	return &dto.CalculatePeriodResponse{
		Message: "Period tariffs calculated successfully",
		Results: out,
	}, nil
}

// ExportPeriod renders the period results as an xlsx workbook, one row per
// night, columns matching the calculation stages.
func (tf *TariffFlowImpl) ExportPeriod(ctx context.Context, req *dto.CalculatePeriodRequest, metadata *ClientMetadata) ([]byte, error) {
	results, err := tf.periodResults(ctx, req)
	if err != nil {
		return nil, err
	}

	days := make([]string, 0, len(results))
	for day := range results {
		days = append(days, day)
	}
	sort.Strings(days)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Tarifs"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{
		"Date",
		pricing.StepLabelBase,
		pricing.StepLabelCategory,
		pricing.StepLabelPlan,
		pricing.StepLabelAdjustments,
		"Tarif final",
	}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, NewBusinessError("PERIOD_EXPORT_FAILED", "Failed to build export", err)
		}
	}

	for row, day := range days {
		r := results[day]
		values := []any{day, r.BaseRate, r.AfterCategoryRule, r.AfterPlanRule, r.AfterPartnerAdjustments, r.FinalRate}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, NewBusinessError("PERIOD_EXPORT_FAILED", "Failed to build export", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("PERIOD_EXPORT_FAILED", "Failed to serialize export", err)
	}
	return buf.Bytes(), nil
}

func (tf *TariffFlowImpl) periodResults(ctx context.Context, req *dto.CalculatePeriodRequest) (map[string]pricing.TariffResult, error) {
	if req == nil {
		return nil, NewBusinessError("PERIOD_VALIDATION_FAILED", "Period request is empty", ErrInvalidDate)
	}

	from, to, err := parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, NewBusinessError("PERIOD_VALIDATION_FAILED", "Invalid period range", err)
	}

	if err := tf.checkEntities(ctx, req.CategoryID, req.PlanID, req.PartnerID); err != nil {
		return nil, err
	}

	rs, err := tf.snapshots.Snapshot(ctx, from, to)
	if err != nil {
		return nil, err
	}

	params := pricing.CalculationParams{
		CategoryID:       req.CategoryID,
		PlanID:           req.PlanID,
		PartnerID:        req.PartnerID,
		BaseRateOverride: req.BaseRateOverride,
		DiscountPercent:  req.DiscountPercent,
		AdjustmentIDs:    req.AdjustmentIDs,
	}
	return pricing.CalculatePeriodTariffs(params, from, to, rs), nil
}

// checkEntities rejects calculations against unknown catalog ids early, so
// the engine's permissive fallbacks never mask a bad reference.
func (tf *TariffFlowImpl) checkEntities(ctx context.Context, categoryID, planID, partnerID uint) error {
	category, err := tf.categoryRepo.ByID(ctx, categoryID)
	if err != nil {
		return NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup room category", err)
	}
	if category == nil {
		return NewBusinessError("CATEGORY_NOT_FOUND", fmt.Sprintf("Room category %d not found", categoryID), ErrCategoryNotFound)
	}

	plan, err := tf.planRepo.ByID(ctx, planID)
	if err != nil {
		return NewBusinessError("PLAN_LOOKUP_FAILED", "Failed to lookup rate plan", err)
	}
	if plan == nil {
		return NewBusinessError("PLAN_NOT_FOUND", fmt.Sprintf("Rate plan %d not found", planID), ErrPlanNotFound)
	}

	partner, err := tf.partnerRepo.ByID(ctx, partnerID)
	if err != nil {
		return NewBusinessError("PARTNER_LOOKUP_FAILED", "Failed to lookup partner", err)
	}
	if partner == nil {
		return NewBusinessError("PARTNER_NOT_FOUND", fmt.Sprintf("Partner %d not found", partnerID), ErrPartnerNotFound)
	}

	return nil
}
