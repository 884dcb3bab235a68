package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyRateRepositoryImpl implements DailyRateRepository
type DailyRateRepositoryImpl struct {
	*BaseRepository[models.DailyRate, models.DailyRateFilter]
}

// NewDailyRateRepository creates a new repository for daily rates
func NewDailyRateRepository(db *gorm.DB) DailyRateRepository {
	return &DailyRateRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DailyRate, models.DailyRateFilter](db),
	}
}

// ByDate retrieves the stored rate for one calendar day.
func (r *DailyRateRepositoryImpl) ByDate(ctx context.Context, date time.Time) (*models.DailyRate, error) {
	db := r.getDB(ctx)

	var rate models.DailyRate
	err := db.Where("date = ?", date.Format("2006-01-02")).Last(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// ByDateRange retrieves every stored rate in the inclusive [from, to] span,
// ordered by day.
func (r *DailyRateRepositoryImpl) ByDateRange(ctx context.Context, from, to time.Time) ([]*models.DailyRate, error) {
	db := r.getDB(ctx)

	var rates []*models.DailyRate
	err := db.
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// Upsert inserts or replaces the rate for a day. The date column carries a
// unique constraint, so conflicting writes update in place.
func (r *DailyRateRepositoryImpl) Upsert(ctx context.Context, rate *models.DailyRate) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"ota_rate", "travco_rate", "updated_at"}),
	}).Create(rate).Error
	return err
}

// applyFilter applies filter conditions to the GORM query
func (r *DailyRateRepositoryImpl) applyFilter(db *gorm.DB, filter models.DailyRateFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Date != nil {
		db = db.Where("date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.DateFrom != nil {
		db = db.Where("date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		db = db.Where("date <= ?", filter.DateTo.Format("2006-01-02"))
	}
	if filter.OTARateMin != nil {
		db = db.Where("ota_rate >= ?", *filter.OTARateMin)
	}
	if filter.OTARateMax != nil {
		db = db.Where("ota_rate <= ?", *filter.OTARateMax)
	}
	return db
}

// ByFilter retrieves daily rates based on filter criteria.
func (r *DailyRateRepositoryImpl) ByFilter(ctx context.Context, filter models.DailyRateFilter, orderBy string, limit, offset int) ([]*models.DailyRate, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.DailyRate{}), filter)

	if orderBy == "" {
		orderBy = "date ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.DailyRate
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of daily rates matching the filter.
func (r *DailyRateRepositoryImpl) Count(ctx context.Context, filter models.DailyRateFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.DailyRate{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any daily rate matching the filter exists.
func (r *DailyRateRepositoryImpl) Exists(ctx context.Context, filter models.DailyRateFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
