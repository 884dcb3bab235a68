package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OccupancySnapshotRepositoryImpl implements OccupancySnapshotRepository
type OccupancySnapshotRepositoryImpl struct {
	*BaseRepository[models.OccupancySnapshot, models.OccupancySnapshotFilter]
}

// NewOccupancySnapshotRepository creates a new repository for occupancy snapshots
func NewOccupancySnapshotRepository(db *gorm.DB) OccupancySnapshotRepository {
	return &OccupancySnapshotRepositoryImpl{
		BaseRepository: NewBaseRepository[models.OccupancySnapshot, models.OccupancySnapshotFilter](db),
	}
}

// ByDate retrieves the occupancy snapshot for one calendar day.
func (r *OccupancySnapshotRepositoryImpl) ByDate(ctx context.Context, date time.Time) (*models.OccupancySnapshot, error) {
	db := r.getDB(ctx)

	var snapshot models.OccupancySnapshot
	err := db.Where("date = ?", date.Format("2006-01-02")).Last(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// ByDateRange retrieves snapshots in the inclusive [from, to] span, ordered
// by day.
func (r *OccupancySnapshotRepositoryImpl) ByDateRange(ctx context.Context, from, to time.Time) ([]*models.OccupancySnapshot, error) {
	db := r.getDB(ctx)

	var snapshots []*models.OccupancySnapshot
	err := db.
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Upsert inserts or replaces the snapshot for a day.
func (r *OccupancySnapshotRepositoryImpl) Upsert(ctx context.Context, snapshot *models.OccupancySnapshot) error {
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
		DoUpdates: clause.AssignmentColumns([]string{"occupancy_rate", "competitor_price", "source", "updated_at"}),
	}).Create(snapshot).Error
	return err
}

// applyFilter applies filter conditions to the GORM query
func (r *OccupancySnapshotRepositoryImpl) applyFilter(db *gorm.DB, filter models.OccupancySnapshotFilter) *gorm.DB {
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
	return db
}

// ByFilter retrieves occupancy snapshots based on filter criteria.
func (r *OccupancySnapshotRepositoryImpl) ByFilter(ctx context.Context, filter models.OccupancySnapshotFilter, orderBy string, limit, offset int) ([]*models.OccupancySnapshot, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OccupancySnapshot{}), filter)

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

	var rows []*models.OccupancySnapshot
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of occupancy snapshots matching the filter.
func (r *OccupancySnapshotRepositoryImpl) Count(ctx context.Context, filter models.OccupancySnapshotFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OccupancySnapshot{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any occupancy snapshot matching the filter exists.
func (r *OccupancySnapshotRepositoryImpl) Exists(ctx context.Context, filter models.OccupancySnapshotFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
