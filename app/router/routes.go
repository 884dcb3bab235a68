// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/MyData-Folk/tariff-vision/app/dto"
	"github.com/MyData-Folk/tariff-vision/app/handlers"
	"github.com/MyData-Folk/tariff-vision/app/middleware"
	"github.com/MyData-Folk/tariff-vision/config"
	_ "github.com/MyData-Folk/tariff-vision/docs"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app               *fiber.App
	cfg               *config.ProductionConfig
	tariffHandler     handlers.TariffHandlerInterface
	yieldHandler      handlers.YieldHandlerInterface
	comparisonHandler handlers.ComparisonHandlerInterface
	dailyRateHandler  handlers.DailyRateHandlerInterface
	ruleAdminHandler  handlers.RuleAdminHandlerInterface
	adminAuthHandler  handlers.AdminAuthHandlerInterface
	authMiddleware    *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	tariffHandler handlers.TariffHandlerInterface,
	yieldHandler handlers.YieldHandlerInterface,
	comparisonHandler handlers.ComparisonHandlerInterface,
	dailyRateHandler handlers.DailyRateHandlerInterface,
	ruleAdminHandler handlers.RuleAdminHandlerInterface,
	adminAuthHandler handlers.AdminAuthHandlerInterface,
	authMiddleware *middleware.AuthMiddleware,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Tariff Vision API",
		ServerHeader: "Tariff-Vision",
		ErrorHandler: errorHandler,
		BodyLimit:    4 * 1024 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:               app,
		cfg:               cfg,
		tariffHandler:     tariffHandler,
		yieldHandler:      yieldHandler,
		comparisonHandler: comparisonHandler,
		dailyRateHandler:  dailyRateHandler,
		ruleAdminHandler:  ruleAdminHandler,
		adminAuthHandler:  adminAuthHandler,
		authMiddleware:    authMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	if !r.cfg.IsProduction() {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		log.Println("API documentation enabled")
	}

	api.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Security.GlobalRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Admin auth with stricter rate limiting
	adminAuth := api.Group("/admin/auth")
	adminAuth.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Security.AuthRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))
	adminAuth.Post("/captcha", r.adminAuthHandler.InitCaptcha)
	adminAuth.Post("/login", r.adminAuthHandler.Login)
	adminAuth.Post("/refresh", r.adminAuthHandler.Refresh)

	// Calculation endpoints
	tariffs := api.Group("/tariffs")
	tariffs.Post("/calculate", r.counted("single", r.tariffHandler.Calculate))
	tariffs.Post("/calculate-period", r.counted("period", r.tariffHandler.CalculatePeriod))
	tariffs.Post("/export", r.counted("export", r.tariffHandler.ExportPeriod))

	calculator := api.Group("/calculator")
	calculator.Post("/category-rate", r.tariffHandler.CategoryRate)
	calculator.Post("/plan-rate", r.tariffHandler.PlanRate)

	yield := api.Group("/yield")
	yield.Post("/optimize", r.yieldHandler.Optimize)
	yield.Get("/snapshots", r.yieldHandler.ListSnapshots)
	yield.Put("/snapshots", r.yieldHandler.UpsertSnapshot, r.authMiddleware.AdminAuthenticate())

	comparison := api.Group("/comparison")
	comparison.Post("/chart-data", r.comparisonHandler.ChartData)
	comparison.Post("/export", r.comparisonHandler.ExportChart)

	// Catalog lookups for the dashboard selectors
	catalog := api.Group("/catalog")
	catalog.Get("/categories", r.ruleAdminHandler.ListCategories)
	catalog.Get("/plans", r.ruleAdminHandler.ListPlans)
	catalog.Get("/partners", r.ruleAdminHandler.ListPartners)

	dailyRates := api.Group("/daily-rates")
	dailyRates.Get("/", r.dailyRateHandler.List)
	dailyRates.Put("/", r.dailyRateHandler.Upsert, r.authMiddleware.AdminAuthenticate())

	// Rule administration requires an admin session
	admin := api.Group("/admin", r.authMiddleware.AdminAuthenticate())
	rules := admin.Group("/rules")
	rules.Get("/categories", r.ruleAdminHandler.ListCategoryRules)
	rules.Put("/categories", r.ruleAdminHandler.SaveCategoryRule)
	rules.Delete("/categories/:id", r.ruleAdminHandler.DeleteCategoryRule)
	rules.Get("/plans", r.ruleAdminHandler.ListPlanRules)
	rules.Put("/plans", r.ruleAdminHandler.SavePlanRule)
	rules.Delete("/plans/:id", r.ruleAdminHandler.DeletePlanRule)
	rules.Get("/adjustments", r.ruleAdminHandler.ListAdjustments)
	rules.Post("/adjustments", r.ruleAdminHandler.CreateAdjustment)
	rules.Delete("/adjustments/:id", r.ruleAdminHandler.DeleteAdjustment)

	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// counted wraps a calculation handler with the per-kind counter.
func (r *FiberRouter) counted(kind string, handler fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		middleware.TariffCalculationsTotal.With(prometheus.Labels{"kind": kind}).Inc()
		return handler(c)
	}
}

func (r *FiberRouter) setupMiddleware() {
	// Request ID must be first so every log line carries it.
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none';",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     r.cfg.Security.AllowedOrigins,
		AllowMethods:     r.cfg.Security.AllowedMethods,
		AllowHeaders:     r.cfg.Security.AllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: r.cfg.Security.AllowCredentials,
		MaxAge:           r.cfg.Security.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   r.cfg.Version,
			"service":   "tariff-vision-api",
		},
	})
}

func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return ErrorJSON(c, fiber.StatusInternalServerError, "Documentation not available", "DOCS_NOT_AVAILABLE")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return ErrorJSON(c, fiber.StatusNotFound, "Endpoint not found", "NOT_FOUND")
}

func rateLimitReached(c fiber.Ctx) error {
	return ErrorJSON(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.", "RATE_LIMIT_EXCEEDED")
}

func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return ErrorJSON(c, code, "Internal server error", "INTERNAL_ERROR")
}

// ErrorJSON writes the standard failure envelope from router-level handlers.
func ErrorJSON(c fiber.Ctx, statusCode int, message, code string) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: code},
	})
}

func generateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return utils.UTCNow().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b)
}
