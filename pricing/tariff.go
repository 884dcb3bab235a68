package pricing

import (
	"fmt"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/utils"
)

// Fallback nightly rates used when a day has no stored rate. These are
// deliberate design constants of the dashboard, not derived from history.
const (
	WeekdayFallbackRate = 120
	WeekendFallbackRate = 140
)

// Display labels of the calculation trace, matching the dashboard verbatim.
const (
	StepLabelBase         = "Tarif de base"
	StepLabelCategory     = "Après règle de catégorie"
	StepLabelPlan         = "Après règle de plan"
	StepLabelAdjustments  = "Après ajustements partenaire"
	stepLabelDiscountTmpl = "Après remise (%g%%)"
)

// CalculationParams describes one tariff calculation.
type CalculationParams struct {
	// Date is the target night.
	Date time.Time

	CategoryID uint
	PlanID     uint
	PartnerID  uint

	// BaseRateOverride, when set, takes precedence over the stored daily
	// rate and the weekday/weekend fallback.
	BaseRateOverride *float64

	// DiscountPercent is a final markdown in [0,100]; 0 means no discount.
	DiscountPercent float64

	// AdjustmentIDs selects which of the partner's adjustments apply.
	// Nil selects every adjustment belonging to PartnerID. Application
	// order is always ascending adjustment id, never selection order.
	AdjustmentIDs []uint
}

// CalculationStep is one labeled intermediate value of the trace.
type CalculationStep struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// TariffResult carries the final rate and every intermediate stage for
// display and audit. Built fresh per call and never mutated afterwards.
type TariffResult struct {
	BaseRate                float64           `json:"base_rate"`
	AfterCategoryRule       float64           `json:"after_category_rule"`
	AfterPlanRule           float64           `json:"after_plan_rule"`
	AfterPartnerAdjustments float64           `json:"after_partner_adjustments"`
	FinalRate               float64           `json:"final_rate"`
	Steps                   []CalculationStep `json:"steps"`
}

// ResolveBaseRate picks the starting rate for a day: an explicit override
// wins, then the stored OTA rate, then the weekday/weekend fallback.
func ResolveBaseRate(date time.Time, override *float64, dailyRates map[string]models.DailyRate) float64 {
	if override != nil {
		return *override
	}
	if dr, ok := dailyRates[utils.DayKey(date)]; ok {
		return dr.OTARate
	}
	if utils.IsWeekend(date) {
		return WeekendFallbackRate
	}
	return WeekdayFallbackRate
}

// CalculateTariff runs the full pipeline for one night: base-rate
// resolution, category rule, plan rule, selected partner adjustments in
// ascending id order, then the discount.
//
// Every numeric stage always runs; only the trace is conditional. The
// partner-adjustment step is surfaced when at least one adjustment applied
// and the discount step when the discount is positive — a display contract
// of the dashboard, not a calculation shortcut. Missing rules degrade to
// identity transforms at their stage; this function cannot fail.
func CalculateTariff(params CalculationParams, rs RuleSet) TariffResult {
	baseRate := ResolveBaseRate(params.Date, params.BaseRateOverride, rs.DailyRates)

	afterCategory := ApplyCategoryRule(baseRate, rs.CategoryRule(params.CategoryID))
	afterPlan := ApplyPlanRule(afterCategory, rs.PlanRule(params.PlanID))

	var adjustments []models.PartnerAdjustment
	if params.AdjustmentIDs == nil {
		adjustments = rs.AdjustmentsForPartner(params.PartnerID)
	} else {
		adjustments = rs.AdjustmentsByIDs(params.AdjustmentIDs)
	}

	afterAdjustments := afterPlan
	for _, adj := range adjustments {
		afterAdjustments = ApplyPartnerAdjustment(afterAdjustments, adj)
	}

	afterDiscount := afterAdjustments * (1 - params.DiscountPercent/100)

	steps := []CalculationStep{
		{Description: StepLabelBase, Value: baseRate},
		{Description: StepLabelCategory, Value: afterCategory},
		{Description: StepLabelPlan, Value: afterPlan},
	}
	if len(adjustments) > 0 {
		steps = append(steps, CalculationStep{Description: StepLabelAdjustments, Value: afterAdjustments})
	}
	if params.DiscountPercent > 0 {
		steps = append(steps, CalculationStep{
			Description: fmt.Sprintf(stepLabelDiscountTmpl, params.DiscountPercent),
			Value:       afterDiscount,
		})
	}

	return TariffResult{
		BaseRate:                baseRate,
		AfterCategoryRule:       afterCategory,
		AfterPlanRule:           afterPlan,
		AfterPartnerAdjustments: afterAdjustments,
		FinalRate:               afterDiscount,
		Steps:                   steps,
	}
}
