package handlers

import (
	"log"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ComparisonHandlerInterface defines the contract for comparison chart handlers
type ComparisonHandlerInterface interface {
	ChartData(c fiber.Ctx) error
	ExportChart(c fiber.Ctx) error
}

// ComparisonHandler handles comparison chart HTTP requests
type ComparisonHandler struct {
	comparisonFlow businessflow.ComparisonFlow
	validator      *validator.Validate
}

func NewComparisonHandler(comparisonFlow businessflow.ComparisonFlow) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonFlow: comparisonFlow,
		validator:      validator.New(),
	}
}

// ChartData builds the partner/plan comparison chart
// @Summary Comparison chart data
// @Description Expand a date range into per-day chart points, one series per selected partner+plan pair
// @Tags Comparison
// @Accept json
// @Produce json
// @Param request body dto.ChartDataRequest true "Range and series selections"
// @Success 200 {object} dto.APIResponse{data=[]dto.ChartPointDTO} "Chart points"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Unknown partner or plan"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/comparison/chart-data [post]
func (h *ComparisonHandler) ChartData(c fiber.Ctx) error {
	var req dto.ChartDataRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/comparison/chart-data")
	defer cancel()

	result, err := h.comparisonFlow.ChartData(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.comparisonError(c, err, "Chart data build failed", "CHART_DATA_FAILED")
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Points)
}

// ExportChart downloads the chart as a spreadsheet
// @Summary Export comparison chart
// @Description Build the chart points and return them as an xlsx file
// @Tags Comparison
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body dto.ChartDataRequest true "Range and series selections"
// @Success 200 {file} file "Spreadsheet"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/comparison/export [post]
func (h *ComparisonHandler) ExportChart(c fiber.Ctx) error {
	var req dto.ChartDataRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/comparison/export")
	defer cancel()

	payload, err := h.comparisonFlow.ExportChart(ctx, &req, clientMetadata(c))
	if err != nil {
		return h.comparisonError(c, err, "Chart export failed", "CHART_EXPORT_FAILED")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comparaison_`+req.DateFrom+`_`+req.DateTo+`.xlsx"`)
	return c.Send(payload)
}

func (h *ComparisonHandler) comparisonError(c fiber.Ctx, err error, genericMessage, genericCode string) error {
	if businessflow.IsPartnerNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Partner not found", "PARTNER_NOT_FOUND", nil)
	}
	if businessflow.IsPlanNotFound(err) {
		return ErrorResponse(c, fiber.StatusNotFound, "Rate plan not found", "PLAN_NOT_FOUND", nil)
	}
	if businessflow.IsInvalidDate(err) || businessflow.IsStartDateAfterEndDate(err) || businessflow.IsPeriodTooLong(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid date range", "INVALID_DATE_RANGE", nil)
	}

	log.Println(genericMessage, err)
	return ErrorResponse(c, fiber.StatusInternalServerError, genericMessage, genericCode, nil)
}
