package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AdjustmentType selects how a partner adjustment moves the running rate
type AdjustmentType string

const (
	// AdjustmentPercentage computes rate*(1 + value/100)
	AdjustmentPercentage AdjustmentType = "percentage"
	// AdjustmentFixed computes rate + value
	AdjustmentFixed AdjustmentType = "fixed"
	// AdjustmentCommission computes rate*(1 - value/100). The markdown sign
	// convention is inherited from the dashboard and kept as-is; see the
	// open question on commissions in DESIGN.md.
	AdjustmentCommission AdjustmentType = "commission"
	// AdjustmentPromoFilter is an identity marker: the filtering happens
	// upstream when the applicable adjustment ids are selected.
	AdjustmentPromoFilter AdjustmentType = "promo_filter"
)

// String returns the string representation of the adjustment type
func (t AdjustmentType) String() string {
	return string(t)
}

// Valid checks if the adjustment type is a known value
func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentPercentage, AdjustmentFixed, AdjustmentCommission, AdjustmentPromoFilter:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for AdjustmentType
func (t *AdjustmentType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = AdjustmentType(v)
	case []byte:
		*t = AdjustmentType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into AdjustmentType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for AdjustmentType
func (t AdjustmentType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid AdjustmentType: %s", t)
	}
	return string(t), nil
}

// PartnerAdjustment is one optional rate modifier of a partner. A partner
// may carry several; the pipeline applies the selected subset in ascending
// id order. AdjustmentValue stays string-encoded as persisted by the
// dashboard; non-numeric values degrade to an identity transform.
// Table: partner_adjustments
type PartnerAdjustment struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_partner_adjustments_uuid" json:"uuid"`

	PartnerID       uint           `gorm:"not null;index:idx_partner_adjustments_partner_id" json:"partner_id"`
	AdjustmentType  AdjustmentType `gorm:"size:32;not null" json:"adjustment_type"`
	AdjustmentValue string         `gorm:"size:64;not null;default:'0'" json:"adjustment_value"`
	Description     string         `gorm:"size:255;not null;default:''" json:"description"`
	UIControl       string         `gorm:"size:32;not null;default:'checkbox'" json:"ui_control"`
	DefaultChecked  *bool          `gorm:"default:false" json:"default_checked"`
	PlanFilter      *string        `gorm:"size:255" json:"plan_filter,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_partner_adjustments_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Partner *Partner `gorm:"foreignKey:PartnerID;references:ID" json:"partner,omitempty"`
}

func (PartnerAdjustment) TableName() string {
	return "partner_adjustments"
}

// PartnerAdjustmentFilter represents filter criteria for partner adjustment queries
type PartnerAdjustmentFilter struct {
	ID             *uint
	UUID           *uuid.UUID
	PartnerID      *uint
	AdjustmentType *AdjustmentType
	DefaultChecked *bool
}
