package models

import (
	"time"

	"github.com/google/uuid"
)

// OccupancySnapshot records the hotel's occupancy and the observed
// competitor price for one calendar day. The yield optimizer reads these
// snapshots; they are passed around by value, never mutated in place.
// Table: occupancy_snapshots
type OccupancySnapshot struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_occupancy_snapshots_uuid" json:"uuid"`

	Date            time.Time `gorm:"type:date;not null;uniqueIndex:uk_occupancy_snapshots_date" json:"date"`
	OccupancyRate   float64   `gorm:"type:numeric(5,2);not null" json:"occupancy_rate"`
	CompetitorPrice float64   `gorm:"type:numeric(10,2);not null" json:"competitor_price"`
	Source          *string   `gorm:"size:255" json:"source,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_occupancy_snapshots_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (OccupancySnapshot) TableName() string {
	return "occupancy_snapshots"
}

// OccupancySnapshotFilter represents filter criteria for occupancy snapshot queries
type OccupancySnapshotFilter struct {
	ID       *uint
	UUID     *uuid.UUID
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
}
