package businessflow

import (
	"context"
	"fmt"
	"log"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/repository"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/google/uuid"
)

// RuleAdminFlow manages the persisted pricing rules and the catalog lists
// the dashboard's rule editor is built from. Every mutation invalidates the
// rule snapshot cache so the next calculation sees fresh rules.
type RuleAdminFlow interface {
	SaveCategoryRule(ctx context.Context, req *dto.SaveCategoryRuleRequest, metadata *ClientMetadata) (*dto.SaveCategoryRuleResponse, error)
	ListCategoryRules(ctx context.Context, metadata *ClientMetadata) (*dto.ListCategoryRulesResponse, error)
	DeleteCategoryRule(ctx context.Context, ruleID uint, metadata *ClientMetadata) (*dto.DeleteRuleResponse, error)

	SavePlanRule(ctx context.Context, req *dto.SavePlanRuleRequest, metadata *ClientMetadata) (*dto.SavePlanRuleResponse, error)
	ListPlanRules(ctx context.Context, metadata *ClientMetadata) (*dto.ListPlanRulesResponse, error)
	DeletePlanRule(ctx context.Context, ruleID uint, metadata *ClientMetadata) (*dto.DeleteRuleResponse, error)

	CreateAdjustment(ctx context.Context, req *dto.CreatePartnerAdjustmentRequest, metadata *ClientMetadata) (*dto.CreatePartnerAdjustmentResponse, error)
	ListAdjustments(ctx context.Context, partnerID uint, metadata *ClientMetadata) (*dto.ListPartnerAdjustmentsResponse, error)
	DeleteAdjustment(ctx context.Context, adjustmentID uint, metadata *ClientMetadata) (*dto.DeleteRuleResponse, error)

	ListCategories(ctx context.Context, metadata *ClientMetadata) (*dto.ListCategoriesResponse, error)
	ListPlans(ctx context.Context, metadata *ClientMetadata) (*dto.ListPlansResponse, error)
	ListPartners(ctx context.Context, metadata *ClientMetadata) (*dto.ListPartnersResponse, error)
}

type RuleAdminFlowImpl struct {
	categoryRuleRepo repository.CategoryRuleRepository
	planRuleRepo     repository.PlanRuleRepository
	adjustmentRepo   repository.PartnerAdjustmentRepository
	categoryRepo     repository.RoomCategoryRepository
	planRepo         repository.RatePlanRepository
	partnerRepo      repository.PartnerRepository
	snapshots        RuleSnapshotProvider
}

func NewRuleAdminFlow(
	categoryRuleRepo repository.CategoryRuleRepository,
	planRuleRepo repository.PlanRuleRepository,
	adjustmentRepo repository.PartnerAdjustmentRepository,
	categoryRepo repository.RoomCategoryRepository,
	planRepo repository.RatePlanRepository,
	partnerRepo repository.PartnerRepository,
	snapshots RuleSnapshotProvider,
) RuleAdminFlow {
	return &RuleAdminFlowImpl{
		categoryRuleRepo: categoryRuleRepo,
		planRuleRepo:     planRuleRepo,
		adjustmentRepo:   adjustmentRepo,
		categoryRepo:     categoryRepo,
		planRepo:         planRepo,
		partnerRepo:      partnerRepo,
		snapshots:        snapshots,
	}
}

// SaveCategoryRule creates the rule of a category or replaces the existing
// one in place, keeping the one-rule-per-category invariant.
func (rf *RuleAdminFlowImpl) SaveCategoryRule(ctx context.Context, req *dto.SaveCategoryRuleRequest, metadata *ClientMetadata) (*dto.SaveCategoryRuleResponse, error) {
	if req == nil {
		return nil, NewBusinessError("CATEGORY_RULE_VALIDATION_FAILED", "Category rule request is empty", ErrInvalidFormulaType)
	}

	formulaType := models.CategoryFormulaType(req.FormulaType)
	if !formulaType.Valid() {
		return nil, NewBusinessError("CATEGORY_RULE_VALIDATION_FAILED", fmt.Sprintf("Unknown formula type %q", req.FormulaType), ErrInvalidFormulaType)
	}

	category, err := rf.categoryRepo.ByID(ctx, req.CategoryID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup room category", err)
	}
	if category == nil {
		return nil, NewBusinessError("CATEGORY_NOT_FOUND", fmt.Sprintf("Room category %d not found", req.CategoryID), ErrCategoryNotFound)
	}

	baseSource := req.BaseSource
	if baseSource == "" {
		baseSource = models.BaseSourceOTA
	}

	rule, err := rf.categoryRuleRepo.ByCategoryID(ctx, req.CategoryID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_RULE_LOOKUP_FAILED", "Failed to lookup category rule", err)
	}

	if rule == nil {
		rule = &models.CategoryRule{
			UUID:       uuid.New(),
			CategoryID: req.CategoryID,
			CreatedAt:  utils.UTCNow(),
		}
	}
	rule.FormulaType = formulaType
	rule.BaseSource = baseSource
	rule.FormulaMultiplier = req.FormulaMultiplier
	rule.FormulaOffset = req.FormulaOffset
	rule.UpdatedAt = utils.UTCNow()

	if rule.ID == 0 {
		err = rf.categoryRuleRepo.Save(ctx, rule)
	} else {
		err = rf.categoryRuleRepo.Update(ctx, rule)
	}
	if err != nil {
		return nil, NewBusinessError("CATEGORY_RULE_SAVE_FAILED", "Failed to save category rule", err)
	}

	rule.Category = category
	rf.invalidateSnapshot(ctx)

	return &dto.SaveCategoryRuleResponse{
		Message: "Category rule saved successfully",
		Rule:    ToCategoryRuleDTO(*rule),
	}, nil
}

func (rf *RuleAdminFlowImpl) ListCategoryRules(ctx context.Context, metadata *ClientMetadata) (*dto.ListCategoryRulesResponse, error) {
	rules, err := rf.categoryRuleRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_RULE_LIST_FAILED", "Failed to list category rules", err)
	}

	items := make([]dto.CategoryRuleDTO, 0, len(rules))
	for _, r := range rules {
		items = append(items, ToCategoryRuleDTO(*r))
	}
	return &dto.ListCategoryRulesResponse{
		Message: "Category rules listed successfully",
		Items:   items,
	}, nil
}

func (rf *RuleAdminFlowImpl) DeleteCategoryRule(ctx context.Context, ruleID uint, metadata *ClientMetadata) (*dto.DeleteRuleResponse, error) {
	rule, err := rf.categoryRuleRepo.ByID(ctx, ruleID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_RULE_LOOKUP_FAILED", "Failed to lookup category rule", err)
	}
	if rule == nil {
		return nil, NewBusinessError("CATEGORY_RULE_NOT_FOUND", fmt.Sprintf("Category rule %d not found", ruleID), ErrCategoryRuleNotFound)
	}

	if err := rf.categoryRuleRepo.Delete(ctx, ruleID); err != nil {
		return nil, NewBusinessError("CATEGORY_RULE_DELETE_FAILED", "Failed to delete category rule", err)
	}
	rf.invalidateSnapshot(ctx)

	return &dto.DeleteRuleResponse{Message: "Category rule deleted successfully"}, nil
}

// SavePlanRule creates or replaces the rule of a plan. Step order is
// persisted exactly as submitted.
func (rf *RuleAdminFlowImpl) SavePlanRule(ctx context.Context, req *dto.SavePlanRuleRequest, metadata *ClientMetadata) (*dto.SavePlanRuleResponse, error) {
	if req == nil {
		return nil, NewBusinessError("PLAN_RULE_VALIDATION_FAILED", "Plan rule request is empty", ErrInvalidStepType)
	}

	plan, err := rf.planRepo.ByID(ctx, req.PlanID)
	if err != nil {
		return nil, NewBusinessError("PLAN_LOOKUP_FAILED", "Failed to lookup rate plan", err)
	}
	if plan == nil {
		return nil, NewBusinessError("PLAN_NOT_FOUND", fmt.Sprintf("Rate plan %d not found", req.PlanID), ErrPlanNotFound)
	}

	steps := make(models.PlanSteps, 0, len(req.Steps))
	for _, s := range req.Steps {
		stepType := models.PlanStepType(s.Type)
		switch stepType {
		case models.StepMultiply, models.StepAdd, models.StepSubtract, models.StepDivide, models.StepPercentage:
		default:
			return nil, NewBusinessError("PLAN_RULE_VALIDATION_FAILED", fmt.Sprintf("Unknown step type %q", s.Type), ErrInvalidStepType)
		}
		steps = append(steps, models.PlanStep{Type: stepType, Value: models.NewStepValue(s.Value)})
	}

	baseSource := req.BaseSource
	if baseSource == "" {
		baseSource = models.BaseSourceOTA
	}

	rule, err := rf.planRuleRepo.ByPlanID(ctx, req.PlanID)
	if err != nil {
		return nil, NewBusinessError("PLAN_RULE_LOOKUP_FAILED", "Failed to lookup plan rule", err)
	}

	if rule == nil {
		rule = &models.PlanRule{
			UUID:      uuid.New(),
			PlanID:    req.PlanID,
			CreatedAt: utils.UTCNow(),
		}
	}
	rule.BaseSource = baseSource
	rule.Steps = steps
	rule.UpdatedAt = utils.UTCNow()

	if rule.ID == 0 {
		err = rf.planRuleRepo.Save(ctx, rule)
	} else {
		err = rf.planRuleRepo.Update(ctx, rule)
	}
	if err != nil {
		return nil, NewBusinessError("PLAN_RULE_SAVE_FAILED", "Failed to save plan rule", err)
	}

	rule.Plan = plan
	rf.invalidateSnapshot(ctx)

	return &dto.SavePlanRuleResponse{
		Message: "Plan rule saved successfully",
		Rule:    ToPlanRuleDTO(*rule),
	}, nil
}

func (rf *RuleAdminFlowImpl) ListPlanRules(ctx context.Context, metadata *ClientMetadata) (*dto.ListPlanRulesResponse, error) {
	rules, err := rf.planRuleRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("PLAN_RULE_LIST_FAILED", "Failed to list plan rules", err)
	}

	items := make([]dto.PlanRuleDTO, 0, len(rules))
	for _, r := range rules {
		items = append(items, ToPlanRuleDTO(*r))
	}
	return &dto.ListPlanRulesResponse{
		Message: "Plan rules listed successfully",
		Items:   items,
	}, nil
}

func (rf *RuleAdminFlowImpl) DeletePlanRule(ctx context.Context, ruleID uint, metadata *ClientMetadata) (*dto.DeleteRuleResponse, error) {
	rule, err := rf.planRuleRepo.ByID(ctx, ruleID)
	if err != nil {
		return nil, NewBusinessError("PLAN_RULE_LOOKUP_FAILED", "Failed to lookup plan rule", err)
	}
	if rule == nil {
		return nil, NewBusinessError("PLAN_RULE_NOT_FOUND", fmt.Sprintf("Plan rule %d not found", ruleID), ErrPlanRuleNotFound)
	}

	if err := rf.planRuleRepo.Delete(ctx, ruleID); err != nil {
		return nil, NewBusinessError("PLAN_RULE_DELETE_FAILED", "Failed to delete plan rule", err)
	}
	rf.invalidateSnapshot(ctx)

	return &dto.DeleteRuleResponse{Message: "Plan rule deleted successfully"}, nil
}

func (rf *RuleAdminFlowImpl) CreateAdjustment(ctx context.Context, req *dto.CreatePartnerAdjustmentRequest, metadata *ClientMetadata) (*dto.CreatePartnerAdjustmentResponse, error) {
	if req == nil {
		return nil, NewBusinessError("ADJUSTMENT_VALIDATION_FAILED", "Adjustment request is empty", ErrAdjustmentNotFound)
	}

	adjustmentType := models.AdjustmentType(req.AdjustmentType)
	if !adjustmentType.Valid() {
		return nil, NewBusinessError("ADJUSTMENT_VALIDATION_FAILED", fmt.Sprintf("Unknown adjustment type %q", req.AdjustmentType), ErrAdjustmentNotFound)
	}

	partner, err := rf.partnerRepo.ByID(ctx, req.PartnerID)
	if err != nil {
		return nil, NewBusinessError("PARTNER_LOOKUP_FAILED", "Failed to lookup partner", err)
	}
	if partner == nil {
		return nil, NewBusinessError("PARTNER_NOT_FOUND", fmt.Sprintf("Partner %d not found", req.PartnerID), ErrPartnerNotFound)
	}

	uiControl := req.UIControl
	if uiControl == "" {
		uiControl = "checkbox"
	}

	adjustment := &models.PartnerAdjustment{
		UUID:            uuid.New(),
		PartnerID:       req.PartnerID,
		AdjustmentType:  adjustmentType,
		AdjustmentValue: req.AdjustmentValue,
		Description:     req.Description,
		UIControl:       uiControl,
		DefaultChecked:  req.DefaultChecked,
		CreatedAt:       utils.UTCNow(),
		UpdatedAt:       utils.UTCNow(),
	}
	if req.PlanFilter != "" {
		adjustment.PlanFilter = utils.ToPtr(req.PlanFilter)
	}

	if err := rf.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, NewBusinessError("ADJUSTMENT_SAVE_FAILED", "Failed to save partner adjustment", err)
	}

	adjustment.Partner = partner
	rf.invalidateSnapshot(ctx)

	return &dto.CreatePartnerAdjustmentResponse{
		Message:    "Partner adjustment created successfully",
		Adjustment: ToPartnerAdjustmentDTO(*adjustment),
	}, nil
}

func (rf *RuleAdminFlowImpl) ListAdjustments(ctx context.Context, partnerID uint, metadata *ClientMetadata) (*dto.ListPartnerAdjustmentsResponse, error) {
	var (
		adjustments []*models.PartnerAdjustment
		err         error
	)
	if partnerID > 0 {
		adjustments, err = rf.adjustmentRepo.ByPartnerID(ctx, partnerID)
	} else {
		adjustments, err = rf.adjustmentRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, NewBusinessError("ADJUSTMENT_LIST_FAILED", "Failed to list partner adjustments", err)
	}

	items := make([]dto.PartnerAdjustmentDTO, 0, len(adjustments))
	for _, a := range adjustments {
		items = append(items, ToPartnerAdjustmentDTO(*a))
	}
	return &dto.ListPartnerAdjustmentsResponse{
		Message: "Partner adjustments listed successfully",
		Items:   items,
	}, nil
}

func (rf *RuleAdminFlowImpl) DeleteAdjustment(ctx context.Context, adjustmentID uint, metadata *ClientMetadata) (*dto.DeleteRuleResponse, error) {
	adjustment, err := rf.adjustmentRepo.ByID(ctx, adjustmentID)
	if err != nil {
		return nil, NewBusinessError("ADJUSTMENT_LOOKUP_FAILED", "Failed to lookup partner adjustment", err)
	}
	if adjustment == nil {
		return nil, NewBusinessError("ADJUSTMENT_NOT_FOUND", fmt.Sprintf("Partner adjustment %d not found", adjustmentID), ErrAdjustmentNotFound)
	}

	if err := rf.adjustmentRepo.Delete(ctx, adjustmentID); err != nil {
		return nil, NewBusinessError("ADJUSTMENT_DELETE_FAILED", "Failed to delete partner adjustment", err)
	}
	rf.invalidateSnapshot(ctx)

	return &dto.DeleteRuleResponse{Message: "Partner adjustment deleted successfully"}, nil
}

func (rf *RuleAdminFlowImpl) ListCategories(ctx context.Context, metadata *ClientMetadata) (*dto.ListCategoriesResponse, error) {
	categories, err := rf.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list room categories", err)
	}

	items := make([]dto.CatalogItemDTO, 0, len(categories))
	for _, c := range categories {
		item := dto.CatalogItemDTO{ID: c.ID, Code: c.Code, Name: c.Name}
		if c.Description != nil {
			item.Description = *c.Description
		}
		items = append(items, item)
	}
	return &dto.ListCategoriesResponse{
		Message: "Room categories listed successfully",
		Items:   items,
	}, nil
}

func (rf *RuleAdminFlowImpl) ListPlans(ctx context.Context, metadata *ClientMetadata) (*dto.ListPlansResponse, error) {
	plans, err := rf.planRepo.ListActive(ctx)
	if err != nil {
		return nil, NewBusinessError("PLAN_LIST_FAILED", "Failed to list rate plans", err)
	}

	items := make([]dto.CatalogItemDTO, 0, len(plans))
	for _, p := range plans {
		item := dto.CatalogItemDTO{ID: p.ID, Code: p.Code, Name: p.Name}
		if p.Description != nil {
			item.Description = *p.Description
		}
		items = append(items, item)
	}
	return &dto.ListPlansResponse{
		Message: "Rate plans listed successfully",
		Items:   items,
	}, nil
}

func (rf *RuleAdminFlowImpl) ListPartners(ctx context.Context, metadata *ClientMetadata) (*dto.ListPartnersResponse, error) {
	partners, err := rf.partnerRepo.ListActive(ctx)
	if err != nil {
		return nil, NewBusinessError("PARTNER_LIST_FAILED", "Failed to list partners", err)
	}

	items := make([]dto.PartnerDTO, 0, len(partners))
	for _, p := range partners {
		items = append(items, dto.PartnerDTO{ID: p.ID, Name: p.Name, Channel: p.Channel})
	}
	return &dto.ListPartnersResponse{
		Message: "Partners listed successfully",
		Items:   items,
	}, nil
}

// invalidateSnapshot drops the rule cache after a mutation. The write itself
// already succeeded, so a failed invalidation is logged, not surfaced.
func (rf *RuleAdminFlowImpl) invalidateSnapshot(ctx context.Context) {
	if err := rf.snapshots.Invalidate(ctx); err != nil {
		log.Printf("businessflow: rule cache invalidation failed: %v", err)
	}
}
