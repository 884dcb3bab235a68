package businessflow

import (
	"context"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/config"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/MyData-Folk/tariff-vision/repository"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/google/uuid"
)

// YieldFlow exposes the occupancy-driven price optimizer and the stored
// occupancy observations it derives from.
type YieldFlow interface {
	Optimize(ctx context.Context, req *dto.OptimizePriceRequest, metadata *ClientMetadata) (*dto.OptimizePriceResponse, error)
	UpsertSnapshot(ctx context.Context, req *dto.UpsertOccupancySnapshotRequest, metadata *ClientMetadata) (*dto.UpsertOccupancySnapshotResponse, error)
	ListSnapshots(ctx context.Context, dateFrom, dateTo string, metadata *ClientMetadata) (*dto.ListOccupancySnapshotsResponse, error)
}

type YieldFlowImpl struct {
	snapshotRepo  repository.OccupancySnapshotRepository
	pricingConfig *config.PricingConfig
}

func NewYieldFlow(snapshotRepo repository.OccupancySnapshotRepository, pricingConfig *config.PricingConfig) YieldFlow {
	return &YieldFlowImpl{
		snapshotRepo:  snapshotRepo,
		pricingConfig: pricingConfig,
	}
}

func (yf *YieldFlowImpl) Optimize(ctx context.Context, req *dto.OptimizePriceRequest, metadata *ClientMetadata) (*dto.OptimizePriceResponse, error) {
	if req == nil {
		return nil, NewBusinessError("YIELD_VALIDATION_FAILED", "Optimize request is empty", ErrSnapshotNotFound)
	}

	price := pricing.CalculateOptimizedPrice(req.OccupancyRate, req.CompetitorPrice)
	return &dto.OptimizePriceResponse{
		Message:        "Optimized price calculated successfully",
		OptimizedPrice: price,
		Currency:       yf.pricingConfig.Currency,
	}, nil
}

func (yf *YieldFlowImpl) UpsertSnapshot(ctx context.Context, req *dto.UpsertOccupancySnapshotRequest, metadata *ClientMetadata) (*dto.UpsertOccupancySnapshotResponse, error) {
	if req == nil {
		return nil, NewBusinessError("SNAPSHOT_VALIDATION_FAILED", "Snapshot request is empty", ErrInvalidDate)
	}

	date, err := utils.ParseDay(req.Date)
	if err != nil {
		return nil, NewBusinessError("SNAPSHOT_VALIDATION_FAILED", "Invalid snapshot date", ErrInvalidDate)
	}

	snapshot := &models.OccupancySnapshot{
		UUID:            uuid.New(),
		Date:            date,
		OccupancyRate:   req.OccupancyRate,
		CompetitorPrice: req.CompetitorPrice,
		CreatedAt:       utils.UTCNow(),
		UpdatedAt:       utils.UTCNow(),
	}
	if req.Source != "" {
		snapshot.Source = utils.ToPtr(req.Source)
	}

	if err := yf.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		return nil, NewBusinessError("SNAPSHOT_UPSERT_FAILED", "Failed to store occupancy snapshot", err)
	}

	return &dto.UpsertOccupancySnapshotResponse{
		Message:  "Occupancy snapshot stored successfully",
		Snapshot: toOccupancySnapshotDTO(*snapshot),
	}, nil
}

func (yf *YieldFlowImpl) ListSnapshots(ctx context.Context, dateFrom, dateTo string, metadata *ClientMetadata) (*dto.ListOccupancySnapshotsResponse, error) {
	from, to, err := parseDateRange(dateFrom, dateTo)
	if err != nil {
		return nil, NewBusinessError("SNAPSHOT_VALIDATION_FAILED", "Invalid snapshot range", err)
	}

	snapshots, err := yf.snapshotRepo.ByDateRange(ctx, from, to)
	if err != nil {
		return nil, NewBusinessError("SNAPSHOT_LIST_FAILED", "Failed to list occupancy snapshots", err)
	}

	items := make([]dto.OccupancySnapshotDTO, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, toOccupancySnapshotDTO(*s))
	}

	return &dto.ListOccupancySnapshotsResponse{
		Message: "Occupancy snapshots listed successfully",
		Items:   items,
	}, nil
}

// toOccupancySnapshotDTO derives the optimized price on the way out so the
// stored observation stays raw.
func toOccupancySnapshotDTO(s models.OccupancySnapshot) dto.OccupancySnapshotDTO {
	out := dto.OccupancySnapshotDTO{
		Date:            utils.DayKey(s.Date),
		OccupancyRate:   s.OccupancyRate,
		CompetitorPrice: s.CompetitorPrice,
		OptimizedPrice:  pricing.CalculateOptimizedPrice(s.OccupancyRate, s.CompetitorPrice),
	}
	if s.Source != nil {
		out.Source = *s.Source
	}
	return out
}
