// Package dto defines request and response payloads exchanged over the API
package dto

// CalculationStepDTO is one labeled intermediate value of a calculation trace.
type CalculationStepDTO struct {
	Description string  `json:"description" example:"Tarif de base"`
	Value       float64 `json:"value" example:"140"`
}

// CalculateTariffRequest drives the single-date tariff pipeline.
type CalculateTariffRequest struct {
	Date             string   `json:"date" validate:"required,datetime=2006-01-02" example:"2025-06-07"`
	CategoryID       uint     `json:"category_id" validate:"required,gt=0" example:"1"`
	PlanID           uint     `json:"plan_id" validate:"required,gt=0" example:"1"`
	PartnerID        uint     `json:"partner_id" validate:"required,gt=0" example:"1"`
	BaseRateOverride *float64 `json:"base_rate_override,omitempty" validate:"omitempty,gte=0"`
	DiscountPercent  float64  `json:"discount_percent" validate:"gte=0,lte=100" example:"10"`
	// AdjustmentIDs selects which partner adjustments apply; absent means
	// all adjustments of the partner.
	AdjustmentIDs []uint `json:"adjustment_ids,omitempty"`
}

// TariffResultDTO carries the final rate plus every intermediate stage.
type TariffResultDTO struct {
	Date                    string               `json:"date" example:"2025-06-07"`
	BaseRate                float64              `json:"base_rate" example:"140"`
	AfterCategoryRule       float64              `json:"after_category_rule" example:"168"`
	AfterPlanRule           float64              `json:"after_plan_rule" example:"193.2"`
	AfterPartnerAdjustments float64              `json:"after_partner_adjustments" example:"193.2"`
	FinalRate               float64              `json:"final_rate" example:"173.88"`
	Currency                string               `json:"currency" example:"EUR"`
	Steps                   []CalculationStepDTO `json:"steps"`
}

type CalculateTariffResponse struct {
	Message string          `json:"message"`
	Result  TariffResultDTO `json:"result"`
}

// CalculatePeriodRequest drives the period expansion over [date_from, date_to].
type CalculatePeriodRequest struct {
	DateFrom         string   `json:"date_from" validate:"required,datetime=2006-01-02" example:"2025-06-02"`
	DateTo           string   `json:"date_to" validate:"required,datetime=2006-01-02" example:"2025-06-08"`
	CategoryID       uint     `json:"category_id" validate:"required,gt=0"`
	PlanID           uint     `json:"plan_id" validate:"required,gt=0"`
	PartnerID        uint     `json:"partner_id" validate:"required,gt=0"`
	BaseRateOverride *float64 `json:"base_rate_override,omitempty" validate:"omitempty,gte=0"`
	DiscountPercent  float64  `json:"discount_percent" validate:"gte=0,lte=100"`
	AdjustmentIDs    []uint   `json:"adjustment_ids,omitempty"`
}

type CalculatePeriodResponse struct {
	Message string                     `json:"message"`
	Results map[string]TariffResultDTO `json:"results"`
}

// CategoryRateRequest asks the calculator for a category's rate relative to
// a reference category.
type CategoryRateRequest struct {
	BaseRate            float64 `json:"base_rate" validate:"required,gte=0" example:"100"`
	CategoryID          uint    `json:"category_id" validate:"required,gt=0"`
	ReferenceCategoryID uint    `json:"reference_category_id" validate:"required,gt=0"`
}

// PlanRateRequest is the plan counterpart of CategoryRateRequest.
type PlanRateRequest struct {
	BaseRate        float64 `json:"base_rate" validate:"required,gte=0" example:"100"`
	PlanID          uint    `json:"plan_id" validate:"required,gt=0"`
	ReferencePlanID uint    `json:"reference_plan_id" validate:"required,gt=0"`
}

type ReferenceRateResponse struct {
	Message string  `json:"message"`
	Rate    float64 `json:"rate" example:"160"`
}
