package repository

import (
	"context"
	"errors"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
)

// PlanRuleRepositoryImpl implements PlanRuleRepository
type PlanRuleRepositoryImpl struct {
	*BaseRepository[models.PlanRule, models.PlanRuleFilter]
}

// NewPlanRuleRepository creates a new repository for plan rules
func NewPlanRuleRepository(db *gorm.DB) PlanRuleRepository {
	return &PlanRuleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PlanRule, models.PlanRuleFilter](db),
	}
}

// ByPlanID returns the rule for a plan, or nil when none exists. plan_id
// carries a unique index so at most one row can match.
func (r *PlanRuleRepositoryImpl) ByPlanID(ctx context.Context, planID uint) (*models.PlanRule, error) {
	db := r.getDB(ctx)

	var rule models.PlanRule
	err := db.Where("plan_id = ?", planID).Last(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// ListAll returns every plan rule.
func (r *PlanRuleRepositoryImpl) ListAll(ctx context.Context) ([]*models.PlanRule, error) {
	db := r.getDB(ctx)

	var rules []*models.PlanRule
	if err := db.Order("plan_id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PlanRuleRepositoryImpl) applyFilter(db *gorm.DB, filter models.PlanRuleFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.PlanID != nil {
		db = db.Where("plan_id = ?", *filter.PlanID)
	}
	return db
}

// ByFilter retrieves plan rules based on filter criteria.
func (r *PlanRuleRepositoryImpl) ByFilter(ctx context.Context, filter models.PlanRuleFilter, orderBy string, limit, offset int) ([]*models.PlanRule, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PlanRule{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.PlanRule
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of plan rules matching the filter.
func (r *PlanRuleRepositoryImpl) Count(ctx context.Context, filter models.PlanRuleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PlanRule{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any plan rule matching the filter exists.
func (r *PlanRuleRepositoryImpl) Exists(ctx context.Context, filter models.PlanRuleFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
