package businessflow

import (
	"context"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/repository"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/google/uuid"
)

// DailyRateFlow manages the stored per-day channel rates that feed every
// calculation.
type DailyRateFlow interface {
	List(ctx context.Context, dateFrom, dateTo string, metadata *ClientMetadata) (*dto.ListDailyRatesResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertDailyRateRequest, metadata *ClientMetadata) (*dto.UpsertDailyRateResponse, error)
}

type DailyRateFlowImpl struct {
	rateRepo repository.DailyRateRepository
}

func NewDailyRateFlow(rateRepo repository.DailyRateRepository) DailyRateFlow {
	return &DailyRateFlowImpl{rateRepo: rateRepo}
}

func (df *DailyRateFlowImpl) List(ctx context.Context, dateFrom, dateTo string, metadata *ClientMetadata) (*dto.ListDailyRatesResponse, error) {
	from, to, err := parseDateRange(dateFrom, dateTo)
	if err != nil {
		return nil, NewBusinessError("DAILY_RATE_VALIDATION_FAILED", "Invalid daily rate range", err)
	}

	rates, err := df.rateRepo.ByDateRange(ctx, from, to)
	if err != nil {
		return nil, NewBusinessError("DAILY_RATE_LIST_FAILED", "Failed to list daily rates", err)
	}

	items := make([]dto.DailyRateDTO, 0, len(rates))
	for _, r := range rates {
		items = append(items, toDailyRateDTO(*r))
	}

	return &dto.ListDailyRatesResponse{
		Message: "Daily rates listed successfully",
		Items:   items,
	}, nil
}

func (df *DailyRateFlowImpl) Upsert(ctx context.Context, req *dto.UpsertDailyRateRequest, metadata *ClientMetadata) (*dto.UpsertDailyRateResponse, error) {
	if req == nil {
		return nil, NewBusinessError("DAILY_RATE_VALIDATION_FAILED", "Daily rate request is empty", ErrInvalidDate)
	}

	date, err := utils.ParseDay(req.Date)
	if err != nil {
		return nil, NewBusinessError("DAILY_RATE_VALIDATION_FAILED", "Invalid daily rate date", ErrInvalidDate)
	}

	rate := &models.DailyRate{
		UUID:       uuid.New(),
		Date:       date,
		OTARate:    req.OTARate,
		TravcoRate: req.TravcoRate,
		CreatedAt:  utils.UTCNow(),
		UpdatedAt:  utils.UTCNow(),
	}

	if err := df.rateRepo.Upsert(ctx, rate); err != nil {
		return nil, NewBusinessError("DAILY_RATE_UPSERT_FAILED", "Failed to store daily rate", err)
	}

	return &dto.UpsertDailyRateResponse{
		Message: "Daily rate stored successfully",
		Rate:    toDailyRateDTO(*rate),
	}, nil
}

func toDailyRateDTO(r models.DailyRate) dto.DailyRateDTO {
	return dto.DailyRateDTO{
		Date:       utils.DayKey(r.Date),
		OTARate:    r.OTARate,
		TravcoRate: r.TravcoRate,
	}
}
