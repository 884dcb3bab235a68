package handlers

import (
	"log"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// YieldHandlerInterface defines the contract for yield optimization handlers
type YieldHandlerInterface interface {
	Optimize(c fiber.Ctx) error
	UpsertSnapshot(c fiber.Ctx) error
	ListSnapshots(c fiber.Ctx) error
}

// YieldHandler handles yield optimization HTTP requests
type YieldHandler struct {
	yieldFlow businessflow.YieldFlow
	validator *validator.Validate
}

func NewYieldHandler(yieldFlow businessflow.YieldFlow) *YieldHandler {
	return &YieldHandler{
		yieldFlow: yieldFlow,
		validator: validator.New(),
	}
}

// Optimize computes the occupancy-driven optimized price
// @Summary Optimize price
// @Description Derive the recommended price from the occupancy rate and the competitor price
// @Tags Yield
// @Accept json
// @Produce json
// @Param request body dto.OptimizePriceRequest true "Occupancy and competitor price"
// @Success 200 {object} dto.APIResponse{data=dto.OptimizePriceResponse} "Optimized price"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/yield/optimize [post]
func (h *YieldHandler) Optimize(c fiber.Ctx) error {
	var req dto.OptimizePriceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/yield/optimize")
	defer cancel()

	result, err := h.yieldFlow.Optimize(ctx, &req, clientMetadata(c))
	if err != nil {
		log.Println("Price optimization failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Price optimization failed", "OPTIMIZATION_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, fiber.Map{
		"optimized_price": result.OptimizedPrice,
		"currency":        result.Currency,
	})
}

// UpsertSnapshot stores a day's occupancy observation
// @Summary Store occupancy snapshot
// @Description Store or replace the occupancy rate and competitor price observed for one day
// @Tags Yield
// @Accept json
// @Produce json
// @Param request body dto.UpsertOccupancySnapshotRequest true "Occupancy observation"
// @Success 200 {object} dto.APIResponse{data=dto.OccupancySnapshotDTO} "Snapshot stored"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/yield/snapshots [put]
func (h *YieldHandler) UpsertSnapshot(c fiber.Ctx) error {
	var req dto.UpsertOccupancySnapshotRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/yield/snapshots")
	defer cancel()

	result, err := h.yieldFlow.UpsertSnapshot(ctx, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidDate(err) {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid date", "INVALID_DATE", nil)
		}
		log.Println("Snapshot upsert failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Snapshot upsert failed", "SNAPSHOT_UPSERT_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Snapshot)
}

// ListSnapshots returns stored occupancy observations with derived prices
// @Summary List occupancy snapshots
// @Description List occupancy observations in [date_from, date_to] with their derived optimized prices
// @Tags Yield
// @Produce json
// @Param date_from query string true "Range start (yyyy-MM-dd)"
// @Param date_to query string true "Range end (yyyy-MM-dd)"
// @Success 200 {object} dto.APIResponse{data=[]dto.OccupancySnapshotDTO} "Snapshots"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/yield/snapshots [get]
func (h *YieldHandler) ListSnapshots(c fiber.Ctx) error {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "date_from and date_to are required", "VALIDATION_ERROR", nil)
	}

	ctx, cancel := requestContext(c, "/api/v1/yield/snapshots")
	defer cancel()

	result, err := h.yieldFlow.ListSnapshots(ctx, dateFrom, dateTo, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidDate(err) || businessflow.IsStartDateAfterEndDate(err) || businessflow.IsPeriodTooLong(err) {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid date range", "INVALID_DATE_RANGE", nil)
		}
		log.Println("Snapshot listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Snapshot listing failed", "SNAPSHOT_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}
