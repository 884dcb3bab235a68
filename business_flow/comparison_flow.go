package businessflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/config"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/MyData-Folk/tariff-vision/repository"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/xuri/excelize/v2"
)

// ComparisonFlow builds the partner/plan comparison chart over a date range
// and exports it as a spreadsheet.
type ComparisonFlow interface {
	ChartData(ctx context.Context, req *dto.ChartDataRequest, metadata *ClientMetadata) (*dto.ChartDataResponse, error)
	ExportChart(ctx context.Context, req *dto.ChartDataRequest, metadata *ClientMetadata) ([]byte, error)
}

type ComparisonFlowImpl struct {
	partnerRepo   repository.PartnerRepository
	planRepo      repository.RatePlanRepository
	snapshots     RuleSnapshotProvider
	pricingConfig *config.PricingConfig
}

func NewComparisonFlow(
	partnerRepo repository.PartnerRepository,
	planRepo repository.RatePlanRepository,
	snapshots RuleSnapshotProvider,
	pricingConfig *config.PricingConfig,
) ComparisonFlow {
	return &ComparisonFlowImpl{
		partnerRepo:   partnerRepo,
		planRepo:      planRepo,
		snapshots:     snapshots,
		pricingConfig: pricingConfig,
	}
}

func (cf *ComparisonFlowImpl) ChartData(ctx context.Context, req *dto.ChartDataRequest, metadata *ClientMetadata) (*dto.ChartDataResponse, error) {
	points, err := cf.buildPoints(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChartPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ChartPointDTO{Date: p.Date, Series: p.Series})
	}
	return &dto.ChartDataResponse{
		Message: "Chart data built successfully",
		Points:  out,
	}, nil
}

// ExportChart renders the chart points as an xlsx workbook, one row per day,
// one column per series.
func (cf *ComparisonFlowImpl) ExportChart(ctx context.Context, req *dto.ChartDataRequest, metadata *ClientMetadata) ([]byte, error) {
	points, err := cf.buildPoints(ctx, req)
	if err != nil {
		return nil, err
	}

	seriesNames := map[string]struct{}{}
	for _, p := range points {
		for name := range p.Series {
			seriesNames[name] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seriesNames))
	for name := range seriesNames {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Comparaison"
	f.SetSheetName(f.GetSheetName(0), sheet)

	if err := f.SetCellValue(sheet, "A1", "Date"); err != nil {
		return nil, NewBusinessError("CHART_EXPORT_FAILED", "Failed to build export", err)
	}
	for col, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+2, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, NewBusinessError("CHART_EXPORT_FAILED", "Failed to build export", err)
		}
	}

	for row, p := range points {
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		if err := f.SetCellValue(sheet, cell, p.Date); err != nil {
			return nil, NewBusinessError("CHART_EXPORT_FAILED", "Failed to build export", err)
		}
		for col, name := range columns {
			value, ok := p.Series[name]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+2, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, NewBusinessError("CHART_EXPORT_FAILED", "Failed to build export", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("CHART_EXPORT_FAILED", "Failed to serialize export", err)
	}
	return buf.Bytes(), nil
}

func (cf *ComparisonFlowImpl) buildPoints(ctx context.Context, req *dto.ChartDataRequest) ([]pricing.ChartPoint, error) {
	if req == nil {
		return nil, NewBusinessError("CHART_VALIDATION_FAILED", "Chart request is empty", ErrInvalidDate)
	}

	from, to, err := parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, NewBusinessError("CHART_VALIDATION_FAILED", "Invalid chart range", err)
	}

	rs, err := cf.snapshots.Snapshot(ctx, from, to)
	if err != nil {
		return nil, err
	}

	selections := make([]pricing.PartnerPlanSelection, 0, len(req.Selections))
	for _, sel := range req.Selections {
		resolved, err := cf.resolveSelection(ctx, sel, rs)
		if err != nil {
			return nil, err
		}
		selections = append(selections, resolved)
	}

	opts := pricing.ChartOptions{LegacyKeywordMultipliers: cf.pricingConfig.LegacyKeywordMultipliers}
	return pricing.TransformDataForChart(rs.DailyRates, pricing.DateRange{From: from, To: to}, selections, opts), nil
}

func (cf *ComparisonFlowImpl) resolveSelection(ctx context.Context, sel dto.PartnerPlanSelectionDTO, rs pricing.RuleSet) (pricing.PartnerPlanSelection, error) {
	partner, err := cf.partnerRepo.ByID(ctx, sel.PartnerID)
	if err != nil {
		return pricing.PartnerPlanSelection{}, NewBusinessError("PARTNER_LOOKUP_FAILED", "Failed to lookup partner", err)
	}
	if partner == nil {
		return pricing.PartnerPlanSelection{}, NewBusinessError("PARTNER_NOT_FOUND", fmt.Sprintf("Partner %d not found", sel.PartnerID), ErrPartnerNotFound)
	}

	plan, err := cf.planRepo.ByID(ctx, sel.PlanID)
	if err != nil {
		return pricing.PartnerPlanSelection{}, NewBusinessError("PLAN_LOOKUP_FAILED", "Failed to lookup rate plan", err)
	}
	if plan == nil {
		return pricing.PartnerPlanSelection{}, NewBusinessError("PLAN_NOT_FOUND", fmt.Sprintf("Rate plan %d not found", sel.PlanID), ErrPlanNotFound)
	}

	resolved := pricing.PartnerPlanSelection{
		PartnerName:    partner.Name,
		PartnerChannel: partner.Channel,
		PlanName:       plan.Name,
		PlanCode:       plan.Code,
	}

	if rule := rs.PlanRule(plan.ID); rule != nil {
		multiplier, offset := linearizePlanSteps(rule.Steps)
		resolved.Multiplier = utils.ToPtr(multiplier)
		resolved.Offset = utils.ToPtr(offset)
	}

	return resolved, nil
}

// linearizePlanSteps folds an ordered step list into the equivalent
// base*multiplier+offset pair. Every step is a linear map, so composing them
// stays linear; the pair reproduces the pipeline's plan stage exactly.
// Invalid values and divide-by-zero steps are skipped, matching the engine.
func linearizePlanSteps(steps models.PlanSteps) (multiplier, offset float64) {
	multiplier, offset = 1, 0
	for _, s := range steps {
		if !s.Value.Valid {
			continue
		}
		v := s.Value.Number
		switch s.Type {
		case models.StepMultiply:
			multiplier *= v
			offset *= v
		case models.StepAdd:
			offset += v
		case models.StepSubtract:
			offset -= v
		case models.StepDivide:
			if v != 0 {
				multiplier /= v
				offset /= v
			}
		case models.StepPercentage:
			factor := 1 + v/100
			multiplier *= factor
			offset *= factor
		}
	}
	return multiplier, offset
}
