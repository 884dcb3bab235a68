package dto

// PlanStepDTO is one ordered operation of a plan rule formula.
type PlanStepDTO struct {
	Type  string  `json:"type" validate:"required,oneof=multiply add subtract divide percentage" example:"percentage"`
	Value float64 `json:"value" example:"15"`
}

// CategoryRuleDTO is the admin-facing view of a category rule.
type CategoryRuleDTO struct {
	ID                uint    `json:"id" example:"1"`
	CategoryID        uint    `json:"category_id" example:"1"`
	CategoryName      string  `json:"category_name,omitempty" example:"Chambre Deluxe"`
	FormulaType       string  `json:"formula_type" example:"multiplicative"`
	BaseSource        string  `json:"base_source" example:"ota_rate"`
	FormulaMultiplier float64 `json:"formula_multiplier" example:"1.2"`
	FormulaOffset     float64 `json:"formula_offset" example:"0"`
}

// SaveCategoryRuleRequest creates or replaces the rule of a category.
type SaveCategoryRuleRequest struct {
	CategoryID        uint    `json:"category_id" validate:"required,gt=0"`
	FormulaType       string  `json:"formula_type" validate:"required,oneof=multiplicative additive fixed"`
	BaseSource        string  `json:"base_source" validate:"omitempty,oneof=ota_rate travco_rate"`
	FormulaMultiplier float64 `json:"formula_multiplier"`
	FormulaOffset     float64 `json:"formula_offset"`
}

type SaveCategoryRuleResponse struct {
	Message string          `json:"message"`
	Rule    CategoryRuleDTO `json:"rule"`
}

type ListCategoryRulesResponse struct {
	Message string            `json:"message"`
	Items   []CategoryRuleDTO `json:"items"`
}

// PlanRuleDTO is the admin-facing view of a plan rule.
type PlanRuleDTO struct {
	ID         uint          `json:"id" example:"1"`
	PlanID     uint          `json:"plan_id" example:"1"`
	PlanName   string        `json:"plan_name,omitempty" example:"Tarif Flexible"`
	BaseSource string        `json:"base_source" example:"ota_rate"`
	Steps      []PlanStepDTO `json:"steps"`
}

// SavePlanRuleRequest creates or replaces the rule of a plan. Step order is
// preserved exactly as submitted.
type SavePlanRuleRequest struct {
	PlanID     uint          `json:"plan_id" validate:"required,gt=0"`
	BaseSource string        `json:"base_source" validate:"omitempty,oneof=ota_rate travco_rate"`
	Steps      []PlanStepDTO `json:"steps" validate:"required,dive"`
}

type SavePlanRuleResponse struct {
	Message string      `json:"message"`
	Rule    PlanRuleDTO `json:"rule"`
}

type ListPlanRulesResponse struct {
	Message string        `json:"message"`
	Items   []PlanRuleDTO `json:"items"`
}

// PartnerAdjustmentDTO is the admin-facing view of a partner adjustment.
type PartnerAdjustmentDTO struct {
	ID              uint   `json:"id" example:"1"`
	PartnerID       uint   `json:"partner_id" example:"1"`
	PartnerName     string `json:"partner_name,omitempty" example:"Booking.com"`
	AdjustmentType  string `json:"adjustment_type" example:"commission"`
	AdjustmentValue string `json:"adjustment_value" example:"18"`
	Description     string `json:"description,omitempty"`
	UIControl       string `json:"ui_control" example:"checkbox"`
	DefaultChecked  *bool  `json:"default_checked"`
	PlanFilter      string `json:"plan_filter,omitempty"`
}

// CreatePartnerAdjustmentRequest adds an adjustment to a partner.
type CreatePartnerAdjustmentRequest struct {
	PartnerID       uint   `json:"partner_id" validate:"required,gt=0"`
	AdjustmentType  string `json:"adjustment_type" validate:"required,oneof=percentage fixed commission promo_filter"`
	AdjustmentValue string `json:"adjustment_value" validate:"required,max=50"`
	Description     string `json:"description" validate:"omitempty,max=255"`
	UIControl       string `json:"ui_control" validate:"omitempty,oneof=checkbox toggle select"`
	DefaultChecked  *bool  `json:"default_checked"`
	PlanFilter      string `json:"plan_filter" validate:"omitempty,max=100"`
}

type CreatePartnerAdjustmentResponse struct {
	Message    string               `json:"message"`
	Adjustment PartnerAdjustmentDTO `json:"adjustment"`
}

type ListPartnerAdjustmentsResponse struct {
	Message string                 `json:"message"`
	Items   []PartnerAdjustmentDTO `json:"items"`
}

// DeleteRuleResponse acknowledges a rule or adjustment deletion.
type DeleteRuleResponse struct {
	Message string `json:"message"`
}
