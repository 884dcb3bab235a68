package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomCategory is a bookable room type (e.g. standard double, suite).
// Categories are administered externally; the pricing engine only reads them.
// Table: room_categories
type RoomCategory struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_room_categories_uuid" json:"uuid"`

	Code        string  `gorm:"size:64;not null;uniqueIndex:uk_room_categories_code" json:"code"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	IsActive  *bool     `gorm:"default:true;index:idx_room_categories_is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (RoomCategory) TableName() string {
	return "room_categories"
}

// RoomCategoryFilter represents filter criteria for room category queries
type RoomCategoryFilter struct {
	ID       *uint
	UUID     *uuid.UUID
	Code     *string
	IsActive *bool
}
