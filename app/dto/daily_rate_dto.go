package dto

// DailyRateDTO is one day's stored channel rates.
type DailyRateDTO struct {
	Date       string  `json:"date" example:"2025-06-07"`
	OTARate    float64 `json:"ota_rate" example:"150"`
	TravcoRate float64 `json:"travco_rate" example:"130"`
}

// UpsertDailyRateRequest stores or replaces a day's rates.
type UpsertDailyRateRequest struct {
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	OTARate    float64 `json:"ota_rate" validate:"required,gte=0"`
	TravcoRate float64 `json:"travco_rate" validate:"gte=0"`
}

type UpsertDailyRateResponse struct {
	Message string       `json:"message"`
	Rate    DailyRateDTO `json:"rate"`
}

type ListDailyRatesResponse struct {
	Message string         `json:"message"`
	Items   []DailyRateDTO `json:"items"`
}
