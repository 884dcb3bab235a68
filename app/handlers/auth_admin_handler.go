package handlers

import (
	"errors"
	"log"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AdminAuthHandlerInterface defines the contract for admin authentication handlers
type AdminAuthHandlerInterface interface {
	InitCaptcha(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Refresh(c fiber.Ctx) error
}

// AdminAuthHandler handles admin authentication HTTP requests
type AdminAuthHandler struct {
	authFlow  businessflow.AdminAuthFlow
	validator *validator.Validate
}

func NewAdminAuthHandler(authFlow businessflow.AdminAuthFlow) *AdminAuthHandler {
	return &AdminAuthHandler{
		authFlow:  authFlow,
		validator: validator.New(),
	}
}

// InitCaptcha issues a rotate-captcha challenge
// @Summary Init admin captcha
// @Tags AdminAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminCaptchaInitResponse} "Challenge issued"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/captcha [post]
func (h *AdminAuthHandler) InitCaptcha(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, "/api/v1/admin/auth/captcha")
	defer cancel()

	result, err := h.authFlow.InitCaptcha(ctx)
	if err != nil {
		log.Println("Captcha init failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Captcha init failed", "CAPTCHA_INIT_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, "Captcha challenge issued", result)
}

// Login verifies the captcha and the admin credentials
// @Summary Admin login
// @Description Verify the rotate-captcha answer and the admin credentials, returning a session
// @Tags AdminAuth
// @Accept json
// @Produce json
// @Param request body dto.AdminCaptchaVerifyRequest true "Captcha answer and credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation or captcha error"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c fiber.Ctx) error {
	var req dto.AdminCaptchaVerifyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/auth/login")
	defer cancel()

	result, err := h.authFlow.Verify(ctx, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidCaptcha(err) {
			return ErrorResponse(c, fiber.StatusBadRequest, "Captcha validation failed", "CAPTCHA_INVALID", nil)
		}
		// Wrong username and wrong password answer identically.
		if businessflow.IsAdminNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS", nil)
		}
		if businessflow.IsAdminInactive(err) {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Admin account is inactive", "ADMIN_INACTIVE", nil)
		}

		log.Println("Admin login failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Admin login failed", "ADMIN_LOGIN_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// Refresh exchanges a refresh token for a new session
// @Summary Refresh admin session
// @Tags AdminAuth
// @Accept json
// @Produce json
// @Param request body dto.AdminRefreshRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.AdminRefreshResponse} "Session refreshed"
// @Failure 401 {object} dto.APIResponse "Invalid refresh token"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/refresh [post]
func (h *AdminAuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.AdminRefreshRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if messages := validateRequest(h.validator, &req); messages != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	ctx, cancel := requestContext(c, "/api/v1/admin/auth/refresh")
	defer cancel()

	result, err := h.authFlow.Refresh(ctx, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsAdminNotFound(err) || businessflow.IsAdminInactive(err) {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", "INVALID_REFRESH_TOKEN", nil)
		}
		var businessErr *businessflow.BusinessError
		if errors.As(err, &businessErr) && businessErr.Code == "ADMIN_REFRESH_FAILED" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", "INVALID_REFRESH_TOKEN", nil)
		}

		log.Println("Session refresh failed", err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Session refresh failed", "ADMIN_REFRESH_FAILED", nil)
	}

	return SuccessResponse(c, fiber.StatusOK, "Session refreshed", result)
}
