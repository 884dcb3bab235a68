package repository

import (
	"context"
	"errors"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
)

// RoomCategoryRepositoryImpl implements RoomCategoryRepository
type RoomCategoryRepositoryImpl struct {
	*BaseRepository[models.RoomCategory, models.RoomCategoryFilter]
}

// NewRoomCategoryRepository creates a new repository for room categories
func NewRoomCategoryRepository(db *gorm.DB) RoomCategoryRepository {
	return &RoomCategoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RoomCategory, models.RoomCategoryFilter](db),
	}
}

// ByCode retrieves a room category by its unique code.
func (r *RoomCategoryRepositoryImpl) ByCode(ctx context.Context, code string) (*models.RoomCategory, error) {
	db := r.getDB(ctx)

	var category models.RoomCategory
	err := db.Where("code = ?", code).Last(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListActive returns every active room category ordered by code.
func (r *RoomCategoryRepositoryImpl) ListActive(ctx context.Context) ([]*models.RoomCategory, error) {
	db := r.getDB(ctx)

	var categories []*models.RoomCategory
	err := db.Where("is_active = ?", true).Order("code ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *RoomCategoryRepositoryImpl) applyFilter(db *gorm.DB, filter models.RoomCategoryFilter) *gorm.DB {
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

// ByFilter retrieves room categories based on filter criteria.
func (r *RoomCategoryRepositoryImpl) ByFilter(ctx context.Context, filter models.RoomCategoryFilter, orderBy string, limit, offset int) ([]*models.RoomCategory, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.RoomCategory{}), filter)

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

	var rows []*models.RoomCategory
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of room categories matching the filter.
func (r *RoomCategoryRepositoryImpl) Count(ctx context.Context, filter models.RoomCategoryFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.RoomCategory{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any room category matching the filter exists.
func (r *RoomCategoryRepositoryImpl) Exists(ctx context.Context, filter models.RoomCategoryFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
