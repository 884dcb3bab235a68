// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/config"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/MyData-Folk/tariff-vision/utils"
)

const RequestIDKey = "X-Request-ID"

// maxPeriodDays bounds period expansion and chart ranges. A year of nights
// is more than any booking or comparison screen asks for.
const maxPeriodDays = 366

// ClientMetadata holds client-related information for audit logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// redisKey prefixes a cache key with the configured namespace.
func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}

// parseDateRange validates and parses an inclusive [from, to] day range.
func parseDateRange(fromStr, toStr string) (from, to time.Time, err error) {
	from, err = utils.ParseDay(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err = utils.ParseDay(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrStartDateAfterEndDate
	}
	if to.Sub(from) > maxPeriodDays*24*time.Hour {
		return time.Time{}, time.Time{}, ErrPeriodTooLong
	}
	return from, to, nil
}

// ToTariffResultDTO converts an engine result for API responses.
func ToTariffResultDTO(date time.Time, result pricing.TariffResult, currency string) dto.TariffResultDTO {
	steps := make([]dto.CalculationStepDTO, 0, len(result.Steps))
	for _, s := range result.Steps {
		steps = append(steps, dto.CalculationStepDTO{Description: s.Description, Value: s.Value})
	}
	return dto.TariffResultDTO{
		Date:                    utils.DayKey(date),
		BaseRate:                result.BaseRate,
		AfterCategoryRule:       result.AfterCategoryRule,
		AfterPlanRule:           result.AfterPlanRule,
		AfterPartnerAdjustments: result.AfterPartnerAdjustments,
		FinalRate:               result.FinalRate,
		Currency:                currency,
		Steps:                   steps,
	}
}

// ToAdminDTOModel converts an admin model for API responses.
func ToAdminDTOModel(admin models.Admin) dto.AdminDTO {
	return dto.AdminDTO{
		ID:        admin.ID,
		UUID:      admin.UUID.String(),
		Username:  admin.Username,
		IsActive:  admin.IsActive,
		CreatedAt: admin.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToAdminSessionDTO packages freshly minted tokens.
func ToAdminSessionDTO(accessToken, refreshToken string, expiresIn time.Duration) dto.AdminSessionDTO {
	return dto.AdminSessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(expiresIn.Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    utils.UTCNowRFC3339(),
	}
}

// ToCategoryRuleDTO converts a category rule for API responses.
func ToCategoryRuleDTO(rule models.CategoryRule) dto.CategoryRuleDTO {
	d := dto.CategoryRuleDTO{
		ID:                rule.ID,
		CategoryID:        rule.CategoryID,
		FormulaType:       rule.FormulaType.String(),
		BaseSource:        rule.BaseSource,
		FormulaMultiplier: rule.FormulaMultiplier,
		FormulaOffset:     rule.FormulaOffset,
	}
	if rule.Category != nil {
		d.CategoryName = rule.Category.Name
	}
	return d
}

// ToPlanRuleDTO converts a plan rule for API responses.
func ToPlanRuleDTO(rule models.PlanRule) dto.PlanRuleDTO {
	steps := make([]dto.PlanStepDTO, 0, len(rule.Steps))
	for _, s := range rule.Steps {
		steps = append(steps, dto.PlanStepDTO{Type: s.Type.String(), Value: s.Value.Number})
	}
	d := dto.PlanRuleDTO{
		ID:         rule.ID,
		PlanID:     rule.PlanID,
		BaseSource: rule.BaseSource,
		Steps:      steps,
	}
	if rule.Plan != nil {
		d.PlanName = rule.Plan.Name
	}
	return d
}

// ToPartnerAdjustmentDTO converts a partner adjustment for API responses.
func ToPartnerAdjustmentDTO(adj models.PartnerAdjustment) dto.PartnerAdjustmentDTO {
	d := dto.PartnerAdjustmentDTO{
		ID:              adj.ID,
		PartnerID:       adj.PartnerID,
		AdjustmentType:  adj.AdjustmentType.String(),
		AdjustmentValue: adj.AdjustmentValue,
		Description:     adj.Description,
		UIControl:       adj.UIControl,
		DefaultChecked:  adj.DefaultChecked,
	}
	if adj.PlanFilter != nil {
		d.PlanFilter = *adj.PlanFilter
	}
	if adj.Partner != nil {
		d.PartnerName = adj.Partner.Name
	}
	return d
}
