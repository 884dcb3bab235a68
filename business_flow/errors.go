// Package businessflow contains the core business logic and use cases for tariff workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Catalog errors
	ErrCategoryNotFound = errors.New("room category not found")
	ErrPlanNotFound     = errors.New("rate plan not found")
	ErrPartnerNotFound  = errors.New("partner not found")

	// Rule errors
	ErrCategoryRuleNotFound = errors.New("category rule not found")
	ErrPlanRuleNotFound     = errors.New("plan rule not found")
	ErrAdjustmentNotFound   = errors.New("partner adjustment not found")
	ErrInvalidFormulaType   = errors.New("invalid formula type")
	ErrInvalidStepType      = errors.New("invalid plan step type")

	// Calculation errors
	ErrInvalidDate           = errors.New("invalid date")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
	ErrPeriodTooLong         = errors.New("period exceeds the maximum allowed length")

	// Daily rate and snapshot errors
	ErrDailyRateNotFound = errors.New("daily rate not found")
	ErrSnapshotNotFound  = errors.New("occupancy snapshot not found")

	// Admin errors
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAdminInactive     = errors.New("admin account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidCaptcha    = errors.New("invalid captcha")

	// Infrastructure errors
	ErrCacheNotAvailable = errors.New("cache not available")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsPlanNotFound(err error) bool {
	return errors.Is(err, ErrPlanNotFound)
}

func IsPartnerNotFound(err error) bool {
	return errors.Is(err, ErrPartnerNotFound)
}

func IsCategoryRuleNotFound(err error) bool {
	return errors.Is(err, ErrCategoryRuleNotFound)
}

func IsPlanRuleNotFound(err error) bool {
	return errors.Is(err, ErrPlanRuleNotFound)
}

func IsAdjustmentNotFound(err error) bool {
	return errors.Is(err, ErrAdjustmentNotFound)
}

func IsInvalidFormulaType(err error) bool {
	return errors.Is(err, ErrInvalidFormulaType)
}

func IsInvalidStepType(err error) bool {
	return errors.Is(err, ErrInvalidStepType)
}

func IsPeriodTooLong(err error) bool {
	return errors.Is(err, ErrPeriodTooLong)
}

func IsDailyRateNotFound(err error) bool {
	return errors.Is(err, ErrDailyRateNotFound)
}

func IsSnapshotNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}

func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAdminInactive(err error) bool {
	return errors.Is(err, ErrAdminInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsInvalidCaptcha(err error) bool {
	return errors.Is(err, ErrInvalidCaptcha)
}
