package repository

import (
	"context"
	"errors"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
)

// RatePlanRepositoryImpl implements RatePlanRepository
type RatePlanRepositoryImpl struct {
	*BaseRepository[models.RatePlan, models.RatePlanFilter]
}

// NewRatePlanRepository creates a new repository for rate plans
func NewRatePlanRepository(db *gorm.DB) RatePlanRepository {
	return &RatePlanRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RatePlan, models.RatePlanFilter](db),
	}
}

// ByCode retrieves a rate plan by its unique code.
func (r *RatePlanRepositoryImpl) ByCode(ctx context.Context, code string) (*models.RatePlan, error) {
	db := r.getDB(ctx)

	var plan models.RatePlan
	err := db.Where("code = ?", code).Last(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// ListActive returns every active rate plan ordered by code.
func (r *RatePlanRepositoryImpl) ListActive(ctx context.Context) ([]*models.RatePlan, error) {
	db := r.getDB(ctx)

	var plans []*models.RatePlan
	err := db.Where("is_active = ?", true).Order("code ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *RatePlanRepositoryImpl) applyFilter(db *gorm.DB, filter models.RatePlanFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Code != nil {
		db = db.Where("code = ?", *filter.Code)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByFilter retrieves rate plans based on filter criteria.
func (r *RatePlanRepositoryImpl) ByFilter(ctx context.Context, filter models.RatePlanFilter, orderBy string, limit, offset int) ([]*models.RatePlan, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.RatePlan{}), filter)

	if orderBy == "" {
		orderBy = "code ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.RatePlan
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of rate plans matching the filter.
func (r *RatePlanRepositoryImpl) Count(ctx context.Context, filter models.RatePlanFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.RatePlan{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any rate plan matching the filter exists.
func (r *RatePlanRepositoryImpl) Exists(ctx context.Context, filter models.RatePlanFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
