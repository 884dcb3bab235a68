package dto

// OptimizePriceRequest feeds the yield optimizer directly.
type OptimizePriceRequest struct {
	OccupancyRate   float64 `json:"occupancy_rate" validate:"gte=0,lte=100" example:"80"`
	CompetitorPrice float64 `json:"competitor_price" validate:"required,gt=0" example:"200"`
}

type OptimizePriceResponse struct {
	Message        string  `json:"message"`
	OptimizedPrice float64 `json:"optimized_price" example:"190"`
	Currency       string  `json:"currency" example:"EUR"`
}

// OccupancySnapshotDTO is one day's stored occupancy observation.
type OccupancySnapshotDTO struct {
	Date            string  `json:"date" example:"2025-06-07"`
	OccupancyRate   float64 `json:"occupancy_rate" example:"82.5"`
	CompetitorPrice float64 `json:"competitor_price" example:"200"`
	Source          string  `json:"source,omitempty" example:"channel-manager"`
	OptimizedPrice  float64 `json:"optimized_price" example:"190"`
}

// UpsertOccupancySnapshotRequest stores or replaces a day's observation.
type UpsertOccupancySnapshotRequest struct {
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	OccupancyRate   float64 `json:"occupancy_rate" validate:"gte=0,lte=100"`
	CompetitorPrice float64 `json:"competitor_price" validate:"required,gt=0"`
	Source          string  `json:"source,omitempty" validate:"omitempty,max=100"`
}

type UpsertOccupancySnapshotResponse struct {
	Message  string               `json:"message"`
	Snapshot OccupancySnapshotDTO `json:"snapshot"`
}

// ListOccupancySnapshotsResponse returns stored observations with their
// derived optimized prices.
type ListOccupancySnapshotsResponse struct {
	Message string                 `json:"message"`
	Items   []OccupancySnapshotDTO `json:"items"`
}
