package models

import (
	"time"

	"github.com/google/uuid"
)

// RatePlan is a commercial rate plan (flexible, non-refundable, breakfast
// included, ...). The plan's pricing behavior lives in its PlanRule.
// Table: rate_plans
type RatePlan struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_rate_plans_uuid" json:"uuid"`

	Code        string  `gorm:"size:64;not null;uniqueIndex:uk_rate_plans_code" json:"code"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	IsActive  *bool     `gorm:"default:true;index:idx_rate_plans_is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (RatePlan) TableName() string {
	return "rate_plans"
}

// RatePlanFilter represents filter criteria for rate plan queries
type RatePlanFilter struct {
	ID       *uint
	UUID     *uuid.UUID
	Code     *string
	IsActive *bool
}
