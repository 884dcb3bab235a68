package handlers

import (
	"log"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// DailyRateHandlerInterface defines the contract for daily rate handlers
type DailyRateHandlerInterface interface {
	List(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
}

// DailyRateHandler handles daily rate HTTP requests
type DailyRateHandler struct {
	dailyRateFlow businessflow.DailyRateFlow
	validator     *validator.Validate
}

func NewDailyRateHandler(dailyRateFlow businessflow.DailyRateFlow) *DailyRateHandler {
	return &DailyRateHandler{
		dailyRateFlow: dailyRateFlow,
		validator:     validator.New(),
	}
}

// List returns stored daily rates in a range
// @Summary List daily rates
// @Description List the stored channel rates for every day in [date_from, date_to]
// @Tags DailyRates
// @Produce json
// @Param date_from query string true "Range start (yyyy-MM-dd)"
// @Param date_to query string true "Range end (yyyy-MM-dd)"
// @Success 200 {object} dto.APIResponse{data=[]dto.DailyRateDTO} "Daily rates"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/daily-rates [get]
func (h *DailyRateHandler) List(c fiber.Ctx) error {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "date_from and date_to are required", "VALIDATION_ERROR", nil)
	}

	ctx, cancel := requestContext(c, "/api/v1/daily-rates")
	defer cancel()

	result, err := h.dailyRateFlow.List(ctx, dateFrom, dateTo, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidDate(err) || businessflow.IsStartDateAfterEndDate(err) || businessflow.IsPeriodTooLong(err) {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid date range", "INVALID_DATE_RANGE", nil)
		}
		log.Println("Daily rate listing failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Daily rate listing failed", "DAILY_RATE_LIST_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Items)
}

// Upsert stores a day's channel rates
// @Summary Store daily rate
// @Description Store or replace the OTA and Travco rates of one day
// @Tags DailyRates
// @Accept json
// @Produce json
// @Param request body dto.UpsertDailyRateRequest true "Channel rates"
// @Success 200 {object} dto.APIResponse{data=dto.DailyRateDTO} "Daily rate stored"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/daily-rates [put]
func (h *DailyRateHandler) Upsert(c fiber.Ctx) error {
	var req dto.UpsertDailyRateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/daily-rates")
	defer cancel()

	result, err := h.dailyRateFlow.Upsert(ctx, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidDate(err) {
			return ErrorResponse(c, fiber.StatusBadRequest, "Invalid date", "INVALID_DATE", nil)
		}
		log.Println("Daily rate upsert failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Daily rate upsert failed", "DAILY_RATE_UPSERT_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, result.Message, result.Rate)
}
