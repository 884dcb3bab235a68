// Package main provides the main entry point for the Tariff Vision rate management API
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MyData-Folk/tariff-vision/app/handlers"
	"github.com/MyData-Folk/tariff-vision/app/middleware"
	"github.com/MyData-Folk/tariff-vision/app/router"
	"github.com/MyData-Folk/tariff-vision/app/scheduler"
	"github.com/MyData-Folk/tariff-vision/app/services"
	businessflow "github.com/MyData-Folk/tariff-vision/business_flow"
	"github.com/MyData-Folk/tariff-vision/config"
	_ "github.com/MyData-Folk/tariff-vision/docs"
	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/repository"
	"github.com/MyData-Folk/tariff-vision/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	stopFuncs []func()
}

func main() {
	log.Println("Starting Tariff Vision application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger according to the logging config.
// File output rotates via lumberjack.
func setupLogging(cfg config.LoggingConfig) {
	var writers []io.Writer

	switch cfg.Output {
	case "file":
		writers = append(writers, newRotatingWriter(cfg))
	case "both":
		writers = append(writers, os.Stdout, newRotatingWriter(cfg))
	default:
		writers = append(writers, os.Stdout)
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func newRotatingWriter(cfg config.LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// Returns nil when caching is disabled; the snapshot provider then reads
// rules straight from the database.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// ensureDefaultAdmin seeds the initial dashboard administrator from config
// when the username does not exist yet. Existing accounts are left untouched,
// so rotating the configured password never clobbers a live credential.
func ensureDefaultAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	adminRepo := repository.NewAdminRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := adminRepo.ByUsername(ctx, cfg.Username)
	if err != nil {
		return fmt.Errorf("failed to look up default admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	now := utils.UTCNow()
	admin := &models.Admin{
		UUID:         uuid.New(),
		Username:     cfg.Username,
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := adminRepo.Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	log.Printf("Seeded default admin account %q", cfg.Username)
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Seed the initial dashboard administrator
	if err := ensureDefaultAdmin(db, cfg.Admin); err != nil {
		return nil, err
	}

	// Initialize repositories
	dailyRateRepo := repository.NewDailyRateRepository(db)
	categoryRuleRepo := repository.NewCategoryRuleRepository(db)
	planRuleRepo := repository.NewPlanRuleRepository(db)
	adjustmentRepo := repository.NewPartnerAdjustmentRepository(db)
	categoryRepo := repository.NewRoomCategoryRepository(db)
	planRepo := repository.NewRatePlanRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	occupancyRepo := repository.NewOccupancySnapshotRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Captcha service for admin login
	captchaSvc, err := services.NewCaptchaServiceRotate(2*time.Minute, 15, 300)
	if err != nil {
		return nil, err
	}

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Rule snapshot provider shared by every calculation flow
	snapshots := businessflow.NewRuleSnapshotProvider(
		dailyRateRepo,
		categoryRuleRepo,
		planRuleRepo,
		adjustmentRepo,
		rc,
		&cfg.Cache,
	)

	// Initialize flows
	tariffFlow := businessflow.NewTariffFlow(
		categoryRepo,
		planRepo,
		partnerRepo,
		snapshots,
		&cfg.Pricing,
	)

	calculatorFlow := businessflow.NewCalculatorFlow(snapshots)

	yieldFlow := businessflow.NewYieldFlow(occupancyRepo, &cfg.Pricing)

	comparisonFlow := businessflow.NewComparisonFlow(
		partnerRepo,
		planRepo,
		snapshots,
		&cfg.Pricing,
	)

	dailyRateFlow := businessflow.NewDailyRateFlow(dailyRateRepo)

	ruleAdminFlow := businessflow.NewRuleAdminFlow(
		categoryRuleRepo,
		planRuleRepo,
		adjustmentRepo,
		categoryRepo,
		planRepo,
		partnerRepo,
		snapshots,
	)

	adminAuthFlow := businessflow.NewAdminAuthFlow(
		adminRepo,
		tokenService,
		captchaSvc,
		cfg.JWT.AccessTokenTTL,
	)

	// Initialize handlers
	tariffHandler := handlers.NewTariffHandler(tariffFlow, calculatorFlow)
	yieldHandler := handlers.NewYieldHandler(yieldFlow)
	comparisonHandler := handlers.NewComparisonHandler(comparisonFlow)
	dailyRateHandler := handlers.NewDailyRateHandler(dailyRateFlow)
	ruleAdminHandler := handlers.NewRuleAdminHandler(ruleAdminFlow)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(
		cfg,
		tariffHandler,
		yieldHandler,
		comparisonHandler,
		dailyRateHandler,
		ruleAdminHandler,
		adminAuthHandler,
		authMiddleware,
	)

	// Background rule snapshot refresher keeps the Redis copy warm
	if cfg.Pricing.SnapshotRefreshInterval > 0 {
		refresher := scheduler.NewSnapshotRefresher(snapshots, cfg.Pricing.SnapshotRefreshInterval, log.Default())
		stop := refresher.Start(context.Background())
		stopFuncs = append(stopFuncs, stop)
		log.Printf("Rule snapshot refresher started (interval=%s)", cfg.Pricing.SnapshotRefreshInterval)
	}

	return &Application{
		router:    appRouter,
		config:    cfg,
		stopFuncs: stopFuncs,
	}, nil
}
