package repository

import (
	"context"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
)

// PartnerAdjustmentRepositoryImpl implements PartnerAdjustmentRepository
type PartnerAdjustmentRepositoryImpl struct {
	*BaseRepository[models.PartnerAdjustment, models.PartnerAdjustmentFilter]
}

// NewPartnerAdjustmentRepository creates a new repository for partner adjustments
func NewPartnerAdjustmentRepository(db *gorm.DB) PartnerAdjustmentRepository {
	return &PartnerAdjustmentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PartnerAdjustment, models.PartnerAdjustmentFilter](db),
	}
}

// ByPartnerID returns every adjustment of a partner in ascending id order,
// the order the calculation pipeline applies them in.
func (r *PartnerAdjustmentRepositoryImpl) ByPartnerID(ctx context.Context, partnerID uint) ([]*models.PartnerAdjustment, error) {
	db := r.getDB(ctx)

	var adjustments []*models.PartnerAdjustment
	err := db.
		Where("partner_id = ?", partnerID).
		Order("id ASC").
		Find(&adjustments).Error
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}

// ByIDs resolves a selection of adjustment ids, ascending id order. Unknown
// ids are silently absent from the result.
func (r *PartnerAdjustmentRepositoryImpl) ByIDs(ctx context.Context, ids []uint) ([]*models.PartnerAdjustment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db := r.getDB(ctx)

	var adjustments []*models.PartnerAdjustment
	err := db.
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&adjustments).Error
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}

// ListAll returns every partner adjustment in ascending id order.
func (r *PartnerAdjustmentRepositoryImpl) ListAll(ctx context.Context) ([]*models.PartnerAdjustment, error) {
	db := r.getDB(ctx)

	var adjustments []*models.PartnerAdjustment
	if err := db.Order("id ASC").Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PartnerAdjustmentRepositoryImpl) applyFilter(db *gorm.DB, filter models.PartnerAdjustmentFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.PartnerID != nil {
		db = db.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.AdjustmentType != nil {
		db = db.Where("adjustment_type = ?", filter.AdjustmentType.String())
	}
	if filter.DefaultChecked != nil {
		db = db.Where("default_checked = ?", *filter.DefaultChecked)
	}
	return db
}

// ByFilter retrieves partner adjustments based on filter criteria.
func (r *PartnerAdjustmentRepositoryImpl) ByFilter(ctx context.Context, filter models.PartnerAdjustmentFilter, orderBy string, limit, offset int) ([]*models.PartnerAdjustment, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PartnerAdjustment{}), filter)

	if orderBy == "" {
		orderBy = "id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.PartnerAdjustment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of partner adjustments matching the filter.
func (r *PartnerAdjustmentRepositoryImpl) Count(ctx context.Context, filter models.PartnerAdjustmentFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PartnerAdjustment{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any partner adjustment matching the filter exists.
func (r *PartnerAdjustmentRepositoryImpl) Exists(ctx context.Context, filter models.PartnerAdjustmentFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
