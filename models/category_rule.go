package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CategoryFormulaType selects how a category rule transforms the base rate
type CategoryFormulaType string

const (
	// FormulaMultiplicative computes base*multiplier + offset
	FormulaMultiplicative CategoryFormulaType = "multiplicative"
	// FormulaAdditive computes base + offset, the multiplier is ignored
	FormulaAdditive CategoryFormulaType = "additive"
	// FormulaFixed pins the rate to the offset, discarding the base entirely
	FormulaFixed CategoryFormulaType = "fixed"
)

// String returns the string representation of the formula type
func (t CategoryFormulaType) String() string {
	return string(t)
}

// Valid checks if the formula type is a known value
func (t CategoryFormulaType) Valid() bool {
	switch t {
	case FormulaMultiplicative, FormulaAdditive, FormulaFixed:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CategoryFormulaType
func (t *CategoryFormulaType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = CategoryFormulaType(v)
	case []byte:
		*t = CategoryFormulaType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CategoryFormulaType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CategoryFormulaType
func (t CategoryFormulaType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid CategoryFormulaType: %s", t)
	}
	return string(t), nil
}

// BaseSource names which daily-rate field a rule starts from.
const (
	BaseSourceOTA    = "ota_rate"
	BaseSourceTravco = "travco_rate"
)

// CategoryRule transforms a day's base rate into a room category's rate.
// One rule per category is an invariant enforced at the repository boundary:
// when duplicates exist, the newest row wins and the anomaly is logged.
// Table: category_rules
type CategoryRule struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_category_rules_uuid" json:"uuid"`

	CategoryID        uint                `gorm:"not null;index:idx_category_rules_category_id" json:"category_id"`
	FormulaType       CategoryFormulaType `gorm:"size:32;not null;default:'multiplicative'" json:"formula_type"`
	BaseSource        string              `gorm:"size:32;not null;default:'ota_rate'" json:"base_source"`
	FormulaMultiplier float64             `gorm:"type:numeric(10,4);not null;default:1" json:"formula_multiplier"`
	FormulaOffset     float64             `gorm:"type:numeric(10,2);not null;default:0" json:"formula_offset"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_category_rules_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Category *RoomCategory `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
}

func (CategoryRule) TableName() string {
	return "category_rules"
}

// CategoryRuleFilter represents filter criteria for category rule queries
type CategoryRuleFilter struct {
	ID          *uint
	UUID        *uuid.UUID
	CategoryID  *uint
	FormulaType *CategoryFormulaType
}
