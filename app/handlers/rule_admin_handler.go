package handlers

import (
	"log"
	"strconv"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// RuleAdminHandlerInterface defines the contract for rule administration handlers
type RuleAdminHandlerInterface interface {
	SaveCategoryRule(c fiber.Ctx) error
	ListCategoryRules(c fiber.Ctx) error
	DeleteCategoryRule(c fiber.Ctx) error
	SavePlanRule(c fiber.Ctx) error
	ListPlanRules(c fiber.Ctx) error
	DeletePlanRule(c fiber.Ctx) error
	CreateAdjustment(c fiber.Ctx) error
	ListAdjustments(c fiber.Ctx) error
	DeleteAdjustment(c fiber.Ctx) error
	ListCategories(c fiber.Ctx) error
	ListPlans(c fiber.Ctx) error
	ListPartners(c fiber.Ctx) error
}

// RuleAdminHandler handles rule administration HTTP requests
type RuleAdminHandler struct {
	ruleAdminFlow businessflow.RuleAdminFlow
	validator     *validator.Validate
}

func NewRuleAdminHandler(ruleAdminFlow businessflow.RuleAdminFlow) *RuleAdminHandler {
	return &RuleAdminHandler{
		ruleAdminFlow: ruleAdminFlow,
		validator:     validator.New(),
	}
}

// SaveCategoryRule creates or replaces a category's rule
// @Summary Save category rule
// @Description Create the pricing rule of a room category or replace the existing one
// @Tags Rules
// @Accept json
// @Produce json
// @Param request body dto.SaveCategoryRuleRequest true "Rule definition"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryRuleDTO} "Rule saved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Unknown category"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/categories [put]
func (h *RuleAdminHandler) SaveCategoryRule(c fiber.Ctx) error {
	var req dto.SaveCategoryRuleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/rules/categories")
	defer cancel()

	result, err := h.ruleAdminFlow.SaveCategoryRule(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.ruleError(c, err, "Category rule save failed", "CATEGORY_RULE_SAVE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Rule)
}

// ListCategoryRules lists the effective category rules
// @Summary List category rules
// @Description List the effective rule of every room category
// @Tags Rules
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryRuleDTO} "Rules"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/categories [get]
func (h *RuleAdminHandler) ListCategoryRules(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, "/api/v1/admin/rules/categories")
	defer cancel()

	result, err := h.ruleAdminFlow.ListCategoryRules(ctx, clientMetadata(c))
	if err != nil {
		log.Println("Category rule listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Category rule listing failed", "CATEGORY_RULE_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}

// DeleteCategoryRule removes a category rule
// @Summary Delete category rule
// @Tags Rules
// @Produce json
// @Param id path int true "Rule id"
// @Success 200 {object} dto.APIResponse "Rule deleted"
// @Failure 404 {object} dto.APIResponse "Rule not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/categories/{id} [delete]
func (h *RuleAdminHandler) DeleteCategoryRule(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid rule id", "INVALID_REQUEST", nil)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/rules/categories/:id")
	defer cancel()

	result, err := h.ruleAdminFlow.DeleteCategoryRule(ctx, id, clientMetadata(c))
	if err != nil {
		return h.ruleError(c, err, "Category rule deletion failed", "CATEGORY_RULE_DELETE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// SavePlanRule creates or replaces a plan's rule
// @Summary Save plan rule
// @Description Create the step formula of a rate plan or replace the existing one; step order is preserved
// @Tags Rules
// @Accept json
// @Produce json
// @Param request body dto.SavePlanRuleRequest true "Rule definition"
// @Success 200 {object} dto.APIResponse{data=dto.PlanRuleDTO} "Rule saved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Unknown plan"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/plans [put]
func (h *RuleAdminHandler) SavePlanRule(c fiber.Ctx) error {
	var req dto.SavePlanRuleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/rules/plans")
	defer cancel()

	result, err := h.ruleAdminFlow.SavePlanRule(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.ruleError(c, err, "Plan rule save failed", "PLAN_RULE_SAVE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Rule)
}

// ListPlanRules lists the effective plan rules
// @Summary List plan rules
// @Tags Rules
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PlanRuleDTO} "Rules"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/plans [get]
func (h *RuleAdminHandler) ListPlanRules(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, "/api/v1/admin/rules/plans")
	defer cancel()

	result, err := h.ruleAdminFlow.ListPlanRules(ctx, clientMetadata(c))
	if err != nil {
		log.Println("Plan rule listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Plan rule listing failed", "PLAN_RULE_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}

// DeletePlanRule removes a plan rule
// @Summary Delete plan rule
// @Tags Rules
// @Produce json
// @Param id path int true "Rule id"
// @Success 200 {object} dto.APIResponse "Rule deleted"
// @Failure 404 {object} dto.APIResponse "Rule not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/plans/{id} [delete]
func (h *RuleAdminHandler) DeletePlanRule(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid rule id", "INVALID_REQUEST", nil)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/rules/plans/:id")
	defer cancel()

	result, err := h.ruleAdminFlow.DeletePlanRule(ctx, id, clientMetadata(c))
	if err != nil {
		return h.ruleError(c, err, "Plan rule deletion failed", "PLAN_RULE_DELETE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// CreateAdjustment adds an adjustment to a partner
// @Summary Create partner adjustment
// @Tags Rules
// @Accept json
// @Produce json
// @Param request body dto.CreatePartnerAdjustmentRequest true "Adjustment definition"
// @Success 201 {object} dto.APIResponse{data=dto.PartnerAdjustmentDTO} "Adjustment created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Unknown partner"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/adjustments [post]
func (h *RuleAdminHandler) CreateAdjustment(c fiber.Ctx) error {
	var req dto.CreatePartnerAdjustmentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/rules/adjustments")
	defer cancel()

	result, err := h.ruleAdminFlow.CreateAdjustment(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.ruleError(c, err, "Adjustment creation failed", "ADJUSTMENT_CREATE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusCreated, result.Message, result.Adjustment)
}

// ListAdjustments lists partner adjustments
// @Summary List partner adjustments
// @Description List adjustments, optionally filtered by partner id
// @Tags Rules
// @Produce json
// @Param partner_id query int false "Partner id"
// @Success 200 {object} dto.APIResponse{data=[]dto.PartnerAdjustmentDTO} "Adjustments"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/adjustments [get]
func (h *RuleAdminHandler) ListAdjustments(c fiber.Ctx) error {
	var partnerID uint
	if raw := c.Query("partner_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid partner id", "INVALID_REQUEST", nil)
		}
		partnerID = uint(parsed)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/rules/adjustments")
	defer cancel()

	result, err := h.ruleAdminFlow.ListAdjustments(ctx, partnerID, clientMetadata(c))
	if err != nil {
		log.Println("Adjustment listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Adjustment listing failed", "ADJUSTMENT_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}

// DeleteAdjustment removes a partner adjustment
// @Summary Delete partner adjustment
// @Tags Rules
// @Produce json
// @Param id path int true "Adjustment id"
// @Success 200 {object} dto.APIResponse "Adjustment deleted"
// @Failure 404 {object} dto.APIResponse "Adjustment not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/rules/adjustments/{id} [delete]
func (h *RuleAdminHandler) DeleteAdjustment(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid adjustment id", "INVALID_REQUEST", nil)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/rules/adjustments/:id")
	defer cancel()

	result, err := h.ruleAdminFlow.DeleteAdjustment(ctx, id, clientMetadata(c))
	if err != nil {
		return h.ruleError(c, err, "Adjustment deletion failed", "ADJUSTMENT_DELETE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// ListCategories lists active room categories
// @Summary List room categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CatalogItemDTO} "Categories"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/catalog/categories [get]
func (h *RuleAdminHandler) ListCategories(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, "/api/v1/catalog/categories")
	defer cancel()

	result, err := h.ruleAdminFlow.ListCategories(ctx, clientMetadata(c))
	if err != nil {
		log.Println("Category listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Category listing failed", "CATEGORY_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}

// ListPlans lists active rate plans
// @Summary List rate plans
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CatalogItemDTO} "Plans"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/catalog/plans [get]
func (h *RuleAdminHandler) ListPlans(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, "/api/v1/catalog/plans")
	defer cancel()

	result, err := h.ruleAdminFlow.ListPlans(ctx, clientMetadata(c))
	if err != nil {
		log.Println("Plan listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Plan listing failed", "PLAN_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}

// ListPartners lists active partners
// @Summary List partners
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PartnerDTO} "Partners"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/catalog/partners [get]
func (h *RuleAdminHandler) ListPartners(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, "/api/v1/catalog/partners")
	defer cancel()

	result, err := h.ruleAdminFlow.ListPartners(ctx, clientMetadata(c))
	if err != nil {
		log.Println("Partner listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Partner listing failed", "PARTNER_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}

func (h *RuleAdminHandler) ruleError(c fiber.Ctx, err error, genericMessage, genericCode string) error {
	if businessflow.IsCategoryNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Room category not found", "CATEGORY_NOT_FOUND", nil)
	}
	if businessflow.IsPlanNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Rate plan not found", "PLAN_NOT_FOUND", nil)
	}
	if businessflow.IsPartnerNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Partner not found", "PARTNER_NOT_FOUND", nil)
	}
	if businessflow.IsCategoryRuleNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Category rule not found", "CATEGORY_RULE_NOT_FOUND", nil)
	}
	if businessflow.IsPlanRuleNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Plan rule not found", "PLAN_RULE_NOT_FOUND", nil)
	}
	if businessflow.IsAdjustmentNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Partner adjustment not found", "ADJUSTMENT_NOT_FOUND", nil)
	}
	if businessflow.IsInvalidFormulaType(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid formula type", "INVALID_FORMULA_TYPE", nil)
	}
	if businessflow.IsInvalidStepType(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid plan step type", "INVALID_STEP_TYPE", nil)
	}

	log.Println(genericMessage, err)
	return ErrorResponse(c, fiber.StatusInternalServerError, genericMessage, genericCode, nil)
}

// pathID parses the numeric :id path parameter.
func pathID(c fiber.Ctx) (uint, error) {
	parsed, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}
