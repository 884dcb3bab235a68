package repository

import (
	"context"
	"errors"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
)

// PartnerRepositoryImpl implements PartnerRepository
type PartnerRepositoryImpl struct {
	*BaseRepository[models.Partner, models.PartnerFilter]
}

// NewPartnerRepository creates a new repository for distribution partners
func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &PartnerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Partner, models.PartnerFilter](db),
	}
}

// ByName retrieves a partner by its unique name.
func (r *PartnerRepositoryImpl) ByName(ctx context.Context, name string) (*models.Partner, error) {
	db := r.getDB(ctx)

	var partner models.Partner
	err := db.Where("name = ?", name).Last(&partner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

// ListActive returns every active partner ordered by name.
func (r *PartnerRepositoryImpl) ListActive(ctx context.Context) ([]*models.Partner, error) {
	db := r.getDB(ctx)

	var partners []*models.Partner
	err := db.Where("is_active = ?", true).Order("name ASC").Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PartnerRepositoryImpl) applyFilter(db *gorm.DB, filter models.PartnerFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.Channel != nil {
		db = db.Where("channel = ?", *filter.Channel)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByFilter retrieves partners based on filter criteria.
func (r *PartnerRepositoryImpl) ByFilter(ctx context.Context, filter models.PartnerFilter, orderBy string, limit, offset int) ([]*models.Partner, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Partner{}), filter)

	if orderBy == "" {
		orderBy = "name ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Partner
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of partners matching the filter.
func (r *PartnerRepositoryImpl) Count(ctx context.Context, filter models.PartnerFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Partner{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any partner matching the filter exists.
func (r *PartnerRepositoryImpl) Exists(ctx context.Context, filter models.PartnerFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
