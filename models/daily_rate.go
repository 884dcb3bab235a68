// Package models contains domain entities and business models for the rate management system
package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyRate is the source of truth for a day's undiscounted nightly price
// from the two distribution channels (OTA and Travco).
// One row per calendar day; upserts replace the channel rates in place.
// Table: daily_rates
type DailyRate struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_daily_rates_uuid" json:"uuid"`

	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uk_daily_rates_date;index:idx_daily_rates_date" json:"date"`
	OTARate    float64   `gorm:"column:ota_rate;type:numeric(10,2);not null" json:"ota_rate"`
	TravcoRate float64   `gorm:"type:numeric(10,2);not null" json:"travco_rate"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_daily_rates_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (DailyRate) TableName() string {
	return "daily_rates"
}

// DailyRateFilter represents filter criteria for daily rate queries
type DailyRateFilter struct {
	ID         *uint
	UUID       *uuid.UUID
	Date       *time.Time
	DateFrom   *time.Time
	DateTo     *time.Time
	OTARateMin *float64
	OTARateMax *float64
}
