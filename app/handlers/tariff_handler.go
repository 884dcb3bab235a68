package handlers

import (
	"log"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// TariffHandlerInterface defines the contract for tariff calculation handlers
type TariffHandlerInterface interface {
	Calculate(c fiber.Ctx) error
	CalculatePeriod(c fiber.Ctx) error
	ExportPeriod(c fiber.Ctx) error
	CategoryRate(c fiber.Ctx) error
	PlanRate(c fiber.Ctx) error
}

// TariffHandler handles tariff calculation HTTP requests
type TariffHandler struct {
	tariffFlow     businessflow.TariffFlow
	calculatorFlow businessflow.CalculatorFlow
	validator      *validator.Validate
}

func NewTariffHandler(tariffFlow businessflow.TariffFlow, calculatorFlow businessflow.CalculatorFlow) *TariffHandler {
	return &TariffHandler{
		tariffFlow:     tariffFlow,
		calculatorFlow: calculatorFlow,
		validator:      validator.New(),
	}
}

// Calculate runs the full pipeline for one date
// @Summary Calculate tariff
// @Description Run the tariff pipeline (base rate, category rule, plan rule, partner adjustments, discount) for one date
// @Tags Tariffs
// @Accept json
// @Produce json
// @Param request body dto.CalculateTariffRequest true "Calculation parameters"
// @Success 200 {object} dto.APIResponse{data=dto.TariffResultDTO} "Tariff calculated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Unknown category, plan or partner"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/tariffs/calculate [post]
func (h *TariffHandler) Calculate(c fiber.Ctx) error {
	var req dto.CalculateTariffRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/tariffs/calculate")
	defer cancel()

	result, err := h.tariffFlow.Calculate(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.tariffError(c, err, "Tariff calculation failed", "TARIFF_CALCULATION_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Result)
}

// CalculatePeriod expands the pipeline over an inclusive date range
// @Summary Calculate period tariffs
// @Description Run the tariff pipeline for every night in [date_from, date_to]
// @Tags Tariffs
// @Accept json
// @Produce json
// @Param request body dto.CalculatePeriodRequest true "Period calculation parameters"
// @Success 200 {object} dto.APIResponse{data=map[string]dto.TariffResultDTO} "Period tariffs calculated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Unknown category, plan or partner"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/tariffs/calculate-period [post]
func (h *TariffHandler) CalculatePeriod(c fiber.Ctx) error {
	var req dto.CalculatePeriodRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/tariffs/calculate-period")
	defer cancel()

	result, err := h.tariffFlow.CalculatePeriod(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.tariffError(c, err, "Period calculation failed", "PERIOD_CALCULATION_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Results)
}

// ExportPeriod downloads the period results as a spreadsheet
// @Summary Export period tariffs
// @Description Run the period calculation and return the results as an xlsx file
// @Tags Tariffs
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body dto.CalculatePeriodRequest true "Period calculation parameters"
// @Success 200 {file} file "Spreadsheet"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/tariffs/export [post]
func (h *TariffHandler) ExportPeriod(c fiber.Ctx) error {
	var req dto.CalculatePeriodRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/tariffs/export")
	defer cancel()

	payload, err := h.tariffFlow.ExportPeriod(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.tariffError(c, err, "Period export failed", "PERIOD_EXPORT_FAILED")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tarifs_`+req.DateFrom+`_`+req.DateTo+`.xlsx"`)
	return c.Send(payload)
}

// CategoryRate answers the grid calculator for a category
// @Summary Category rate from a reference
// @Description Compute a category's rate given the reference category's base rate
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.CategoryRateRequest true "Reference parameters"
// @Success 200 {object} dto.APIResponse{data=dto.ReferenceRateResponse} "Rate calculated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/calculator/category-rate [post]
func (h *TariffHandler) CategoryRate(c fiber.Ctx) error {
	var req dto.CategoryRateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/calculator/category-rate")
	defer cancel()

	result, err := h.calculatorFlow.CategoryRate(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.tariffError(c, err, "Category rate calculation failed", "CATEGORY_RATE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, fiber.Map{"rate": result.Rate})
}

// PlanRate answers the grid calculator for a plan
// @Summary Plan rate from a reference
// @Description Compute a plan's rate given the reference plan's base rate
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.PlanRateRequest true "Reference parameters"
// @Success 200 {object} dto.APIResponse{data=dto.ReferenceRateResponse} "Rate calculated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/calculator/plan-rate [post]
func (h *TariffHandler) PlanRate(c fiber.Ctx) error {
	var req dto.PlanRateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/calculator/plan-rate")
	defer cancel()

	result, err := h.calculatorFlow.PlanRate(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.tariffError(c, err, "Plan rate calculation failed", "PLAN_RATE_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, fiber.Map{"rate": result.Rate})
}

func (h *TariffHandler) tariffError(c fiber.Ctx, err error, genericMessage, genericCode string) error {
	if businessflow.IsCategoryNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Room category not found", "CATEGORY_NOT_FOUND", nil)
	}
	if businessflow.IsPlanNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Rate plan not found", "PLAN_NOT_FOUND", nil)
	}
	if businessflow.IsPartnerNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Partner not found", "PARTNER_NOT_FOUND", nil)
	}
	if businessflow.IsInvalidDate(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid date", "INVALID_DATE", nil)
	}
	if businessflow.IsStartDateAfterEndDate(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Start date cannot be after end date", "INVALID_DATE_RANGE", nil)
	}
	if businessflow.IsPeriodTooLong(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Period exceeds the maximum allowed length", "PERIOD_TOO_LONG", nil)
	}

	log.Println(genericMessage, err)
	return ErrorResponse(c, fiber.StatusInternalServerError, genericMessage, genericCode, nil)
}
