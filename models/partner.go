package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner distribution channels. The channel decides which daily-rate field
// feeds the comparison transformer; "travco" is the alternate channel.
const (
	PartnerChannelOTA    = "ota"
	PartnerChannelTravco = "travco"
	PartnerChannelDirect = "direct"
)

// Partner is a distribution partner (OTA, tour operator, direct site).
// Table: partners
type Partner struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_partners_uuid" json:"uuid"`

	Name    string `gorm:"size:255;not null;uniqueIndex:uk_partners_name" json:"name"`
	Channel string `gorm:"size:32;not null;default:'ota';index:idx_partners_channel" json:"channel"`

	IsActive  *bool     `gorm:"default:true;index:idx_partners_is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Partner) TableName() string {
	return "partners"
}

// PartnerFilter represents filter criteria for partner queries
type PartnerFilter struct {
	ID       *uint
	UUID     *uuid.UUID
	Name     *string
	Channel  *string
	IsActive *bool
}
