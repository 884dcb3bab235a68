// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// DailyRateRepository defines operations for stored daily rates
type DailyRateRepository interface {
	Repository[models.DailyRate, models.DailyRateFilter]
	ByDate(ctx context.Context, date time.Time) (*models.DailyRate, error)
	ByDateRange(ctx context.Context, from, to time.Time) ([]*models.DailyRate, error)
	Upsert(ctx context.Context, rate *models.DailyRate) error
}

// CategoryRuleRepository defines operations for category rules
type CategoryRuleRepository interface {
	Repository[models.CategoryRule, models.CategoryRuleFilter]
	ByCategoryID(ctx context.Context, categoryID uint) (*models.CategoryRule, error)
	ListAll(ctx context.Context) ([]*models.CategoryRule, error)
}

// PlanRuleRepository defines operations for plan rules
type PlanRuleRepository interface {
	Repository[models.PlanRule, models.PlanRuleFilter]
	ByPlanID(ctx context.Context, planID uint) (*models.PlanRule, error)
	ListAll(ctx context.Context) ([]*models.PlanRule, error)
}

// PartnerAdjustmentRepository defines operations for partner adjustments
type PartnerAdjustmentRepository interface {
	Repository[models.PartnerAdjustment, models.PartnerAdjustmentFilter]
	ByPartnerID(ctx context.Context, partnerID uint) ([]*models.PartnerAdjustment, error)
	ByIDs(ctx context.Context, ids []uint) ([]*models.PartnerAdjustment, error)
	ListAll(ctx context.Context) ([]*models.PartnerAdjustment, error)
}

// RoomCategoryRepository defines operations for room categories
type RoomCategoryRepository interface {
	Repository[models.RoomCategory, models.RoomCategoryFilter]
	ByCode(ctx context.Context, code string) (*models.RoomCategory, error)
	ListActive(ctx context.Context) ([]*models.RoomCategory, error)
}

// RatePlanRepository defines operations for rate plans
type RatePlanRepository interface {
	Repository[models.RatePlan, models.RatePlanFilter]
	ByCode(ctx context.Context, code string) (*models.RatePlan, error)
	ListActive(ctx context.Context) ([]*models.RatePlan, error)
}

// PartnerRepository defines operations for distribution partners
type PartnerRepository interface {
	Repository[models.Partner, models.PartnerFilter]
	ByName(ctx context.Context, name string) (*models.Partner, error)
	ListActive(ctx context.Context) ([]*models.Partner, error)
}

// OccupancySnapshotRepository defines operations for occupancy snapshots
type OccupancySnapshotRepository interface {
	Repository[models.OccupancySnapshot, models.OccupancySnapshotFilter]
	ByDate(ctx context.Context, date time.Time) (*models.OccupancySnapshot, error)
	ByDateRange(ctx context.Context, from, to time.Time) ([]*models.OccupancySnapshot, error)
	Upsert(ctx context.Context, snapshot *models.OccupancySnapshot) error
}

// AdminRepository defines operations for dashboard administrators
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, adminID uint, at time.Time) error
}
