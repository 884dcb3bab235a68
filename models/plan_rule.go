package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PlanStepType is one arithmetic operation inside a plan rule formula
type PlanStepType string

const (
	StepMultiply   PlanStepType = "multiply"
	StepAdd        PlanStepType = "add"
	StepSubtract   PlanStepType = "subtract"
	StepDivide     PlanStepType = "divide"
	StepPercentage PlanStepType = "percentage"
)

// String returns the string representation of the step type
func (t PlanStepType) String() string {
	return string(t)
}

// StepValue is a decimal that tolerates the storage encodings seen in
// legacy rows: JSON numbers, numeric strings, or junk. Junk decodes as an
// invalid value and the engine skips the step instead of erroring.
type StepValue struct {
	Number float64
	Valid  bool
}

// NewStepValue builds a valid step value.
func NewStepValue(n float64) StepValue {
	return StepValue{Number: n, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler for StepValue
func (v *StepValue) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		v.Number = f
		v.Valid = !math.IsNaN(f) && !math.IsInf(f, 0)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			v.Number = f
			v.Valid = true
			return nil
		}
	}

	// Unparsable values are kept as invalid, never rejected.
	*v = StepValue{}
	return nil
}

// MarshalJSON implements json.Marshaler for StepValue
func (v StepValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Number)
}

// PlanStep is one ordered operation of a plan rule formula
type PlanStep struct {
	Type  PlanStepType `json:"type"`
	Value StepValue    `json:"value"`
}

// PlanSteps is the ordered step list of a plan rule, stored as jsonb.
// Step order is semantically significant (a percentage markup before a fixed
// offset differs from the reverse) and is preserved exactly as persisted.
type PlanSteps []PlanStep

// Value implements the driver.Valuer interface for PlanSteps
func (s PlanSteps) Value() (driver.Value, error) {
	if s == nil {
		s = PlanSteps{}
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for PlanSteps.
// Legacy rows sometimes persisted the list as a keyed object instead of an
// array; normalization takes the object's values ordered by key so callers
// can always iterate a slice.
func (s *PlanSteps) Scan(value any) error {
	if value == nil {
		*s = PlanSteps{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PlanSteps", value)
	}

	*s = NormalizeSteps(bytes)
	return nil
}

// NormalizeSteps decodes a raw jsonb step list into an ordered slice.
// Arrays decode as-is; keyed objects contribute their values ordered by key
// (numeric keys sort numerically); anything else normalizes to empty.
func NormalizeSteps(raw []byte) PlanSteps {
	var steps []PlanStep
	if err := json.Unmarshal(raw, &steps); err == nil {
		return steps
	}

	var keyed map[string]PlanStep
	if err := json.Unmarshal(raw, &keyed); err == nil {
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ni, errI := strconv.Atoi(keys[i])
			nj, errJ := strconv.Atoi(keys[j])
			if errI == nil && errJ == nil {
				return ni < nj
			}
			return keys[i] < keys[j]
		})
		ordered := make(PlanSteps, 0, len(keys))
		for _, k := range keys {
			ordered = append(ordered, keyed[k])
		}
		return ordered
	}

	return PlanSteps{}
}

// PlanRule is the multi-step pricing formula of a rate plan.
// At most one rule per plan (unique index); steps apply strictly in order.
// Table: plan_rules
type PlanRule struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_plan_rules_uuid" json:"uuid"`

	PlanID     uint      `gorm:"not null;uniqueIndex:uk_plan_rules_plan_id" json:"plan_id"`
	BaseSource string    `gorm:"size:32;not null;default:'ota_rate'" json:"base_source"`
	Steps      PlanSteps `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_plan_rules_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Plan *RatePlan `gorm:"foreignKey:PlanID;references:ID" json:"plan,omitempty"`
}

func (PlanRule) TableName() string {
	return "plan_rules"
}

// PlanRuleFilter represents filter criteria for plan rule queries
type PlanRuleFilter struct {
	ID     *uint
	UUID   *uuid.UUID
	PlanID *uint
}
