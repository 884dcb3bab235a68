package dto

// PartnerPlanSelectionDTO names one partner+plan series of the comparison
// chart.
type PartnerPlanSelectionDTO struct {
	PartnerID uint `json:"partner_id" validate:"required,gt=0"`
	PlanID    uint `json:"plan_id" validate:"required,gt=0"`
}

// ChartDataRequest expands a date range into per-day comparison points.
type ChartDataRequest struct {
	DateFrom   string                    `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo     string                    `json:"date_to" validate:"required,datetime=2006-01-02"`
	Selections []PartnerPlanSelectionDTO `json:"selections" validate:"required,min=1,dive"`
}

// ChartPointDTO is one day of the chart, one value per series keyed
// "<partner> - <plan>".
type ChartPointDTO struct {
	Date   string             `json:"date" example:"2025-06-07"`
	Series map[string]float64 `json:"series"`
}

type ChartDataResponse struct {
	Message string          `json:"message"`
	Points  []ChartPointDTO `json:"points"`
}
