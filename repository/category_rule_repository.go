package repository

import (
	"context"
	"log"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
)

// CategoryRuleRepositoryImpl implements CategoryRuleRepository
type CategoryRuleRepositoryImpl struct {
	*BaseRepository[models.CategoryRule, models.CategoryRuleFilter]
}

// NewCategoryRuleRepository creates a new repository for category rules
func NewCategoryRuleRepository(db *gorm.DB) CategoryRuleRepository {
	return &CategoryRuleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CategoryRule, models.CategoryRuleFilter](db),
	}
}

// ByCategoryID returns the newest rule for a category, or nil when none
// exists. The schema does not force one rule per category on all historical
// paths, so duplicates are resolved newest-wins here with a warning rather
// than silently picking an arbitrary row downstream.
func (r *CategoryRuleRepositoryImpl) ByCategoryID(ctx context.Context, categoryID uint) (*models.CategoryRule, error) {
	db := r.getDB(ctx)

	var rules []*models.CategoryRule
	err := db.
		Where("category_id = ?", categoryID).
		Order("created_at DESC, id DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	if len(rules) > 1 {
		log.Printf("repository: %d category rules found for category %d, using newest (id=%d)", len(rules), categoryID, rules[0].ID)
	}
	return rules[0], nil
}

// ListAll returns one rule per category, newest wins.
func (r *CategoryRuleRepositoryImpl) ListAll(ctx context.Context) ([]*models.CategoryRule, error) {
	db := r.getDB(ctx)

	var rules []*models.CategoryRule
	err := db.Raw(`
		SELECT DISTINCT ON (category_id) *
		FROM category_rules
		ORDER BY category_id, created_at DESC, id DESC
	`).Scan(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *CategoryRuleRepositoryImpl) applyFilter(db *gorm.DB, filter models.CategoryRuleFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FormulaType != nil {
		db = db.Where("formula_type = ?", filter.FormulaType.String())
	}
	return db
}

// ByFilter retrieves category rules based on filter criteria.
func (r *CategoryRuleRepositoryImpl) ByFilter(ctx context.Context, filter models.CategoryRuleFilter, orderBy string, limit, offset int) ([]*models.CategoryRule, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CategoryRule{}), filter)

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

	var rows []*models.CategoryRule
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of category rules matching the filter.
func (r *CategoryRuleRepositoryImpl) Count(ctx context.Context, filter models.CategoryRuleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CategoryRule{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any category rule matching the filter exists.
func (r *CategoryRuleRepositoryImpl) Exists(ctx context.Context, filter models.CategoryRuleFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
