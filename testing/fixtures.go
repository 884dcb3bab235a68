// Package testing provides test utilities and database setup for testing the rate management system
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestCategory creates a room category with a unique code
func (tf *TestFixtures) CreateTestCategory(name string) (*models.RoomCategory, error) {
	category := &models.RoomCategory{
		UUID:     uuid.New(),
		Code:     fmt.Sprintf("cat-%d", rand.Intn(10000000)),
		Name:     name,
		IsActive: utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create test category: %w", err)
	}
	return category, nil
}

// CreateTestPlan creates a rate plan with a unique code
func (tf *TestFixtures) CreateTestPlan(name string) (*models.RatePlan, error) {
	plan := &models.RatePlan{
		UUID:     uuid.New(),
		Code:     fmt.Sprintf("plan-%d", rand.Intn(10000000)),
		Name:     name,
		IsActive: utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create test plan: %w", err)
	}
	return plan, nil
}

// CreateTestPartner creates a distribution partner on the given channel
func (tf *TestFixtures) CreateTestPartner(name, channel string) (*models.Partner, error) {
	if channel == "" {
		channel = models.PartnerChannelOTA
	}
	partner := &models.Partner{
		UUID:     uuid.New(),
		Name:     fmt.Sprintf("%s %d", name, rand.Intn(10000000)),
		Channel:  channel,
		IsActive: utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(partner).Error; err != nil {
		return nil, fmt.Errorf("failed to create test partner: %w", err)
	}
	return partner, nil
}

// CreateTestDailyRate creates one daily rate row for a calendar day
func (tf *TestFixtures) CreateTestDailyRate(date time.Time, otaRate, travcoRate float64) (*models.DailyRate, error) {
	rate := &models.DailyRate{
		UUID:       uuid.New(),
		Date:       utils.TruncateToDay(date),
		OTARate:    otaRate,
		TravcoRate: travcoRate,
	}

	if err := tf.DB.DB.Create(rate).Error; err != nil {
		return nil, fmt.Errorf("failed to create test daily rate: %w", err)
	}
	return rate, nil
}

// CreateTestCategoryRule attaches a formula rule to a category
func (tf *TestFixtures) CreateTestCategoryRule(categoryID uint, formulaType models.CategoryFormulaType, multiplier, offset float64) (*models.CategoryRule, error) {
	rule := &models.CategoryRule{
		UUID:              uuid.New(),
		CategoryID:        categoryID,
		FormulaType:       formulaType,
		BaseSource:        models.BaseSourceOTA,
		FormulaMultiplier: multiplier,
		FormulaOffset:     offset,
	}

	if err := tf.DB.DB.Create(rule).Error; err != nil {
		return nil, fmt.Errorf("failed to create test category rule: %w", err)
	}
	return rule, nil
}

// CreateTestPlanRule attaches an ordered step formula to a plan
func (tf *TestFixtures) CreateTestPlanRule(planID uint, steps models.PlanSteps) (*models.PlanRule, error) {
	rule := &models.PlanRule{
		UUID:       uuid.New(),
		PlanID:     planID,
		BaseSource: models.BaseSourceOTA,
		Steps:      steps,
	}

	if err := tf.DB.DB.Create(rule).Error; err != nil {
		return nil, fmt.Errorf("failed to create test plan rule: %w", err)
	}
	return rule, nil
}

// CreateTestAdjustment attaches a rate modifier to a partner
func (tf *TestFixtures) CreateTestAdjustment(partnerID uint, adjType models.AdjustmentType, value, description string) (*models.PartnerAdjustment, error) {
	adjustment := &models.PartnerAdjustment{
		UUID:            uuid.New(),
		PartnerID:       partnerID,
		AdjustmentType:  adjType,
		AdjustmentValue: value,
		Description:     description,
		UIControl:       "checkbox",
		DefaultChecked:  utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(adjustment).Error; err != nil {
		return nil, fmt.Errorf("failed to create test adjustment: %w", err)
	}
	return adjustment, nil
}

// CreateTestOccupancySnapshot records occupancy and competitor price for a day
func (tf *TestFixtures) CreateTestOccupancySnapshot(date time.Time, occupancyRate, competitorPrice float64) (*models.OccupancySnapshot, error) {
	snapshot := &models.OccupancySnapshot{
		UUID:            uuid.New(),
		Date:            utils.TruncateToDay(date),
		OccupancyRate:   occupancyRate,
		CompetitorPrice: competitorPrice,
		Source:          utils.ToPtr("test"),
	}

	if err := tf.DB.DB.Create(snapshot).Error; err != nil {
		return nil, fmt.Errorf("failed to create test occupancy snapshot: %w", err)
	}
	return snapshot, nil
}

// CreateTestAdmin creates an active admin with a bcrypt-hashed password
func (tf *TestFixtures) CreateTestAdmin(username, password string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		UUID:         uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}
	return admin, nil
}

// SeedCatalog creates one category, one plan and one partner wired with
// typical rules: a multiplicative category rule, a two-step plan rule and a
// percentage adjustment.
func (tf *TestFixtures) SeedCatalog() (*models.RoomCategory, *models.RatePlan, *models.Partner, error) {
	category, err := tf.CreateTestCategory("Chambre Standard")
	if err != nil {
		return nil, nil, nil, err
	}
	plan, err := tf.CreateTestPlan("Tarif Flexible")
	if err != nil {
		return nil, nil, nil, err
	}
	partner, err := tf.CreateTestPartner("Booking", models.PartnerChannelOTA)
	if err != nil {
		return nil, nil, nil, err
	}

	if _, err := tf.CreateTestCategoryRule(category.ID, models.FormulaMultiplicative, 1.2, 10); err != nil {
		return nil, nil, nil, err
	}
	steps := models.PlanSteps{
		{Type: models.StepMultiply, Value: models.NewStepValue(1.1)},
		{Type: models.StepAdd, Value: models.NewStepValue(5)},
	}
	if _, err := tf.CreateTestPlanRule(plan.ID, steps); err != nil {
		return nil, nil, nil, err
	}
	if _, err := tf.CreateTestAdjustment(partner.ID, models.AdjustmentPercentage, "10", "Majoration partenaire"); err != nil {
		return nil, nil, nil, err
	}

	return category, plan, partner, nil
}
