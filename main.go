// Package main provides the main entry point for the Ghana cargo logistics backend
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/handlers"
	"github.com/edzeame-del/ghana-cargo-logistics/app/middleware"
	"github.com/edzeame-del/ghana-cargo-logistics/app/router"
	"github.com/edzeame-del/ghana-cargo-logistics/app/scheduler"
	"github.com/edzeame-del/ghana-cargo-logistics/app/services"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
	"github.com/edzeame-del/ghana-cargo-logistics/config"
	_ "github.com/edzeame-del/ghana-cargo-logistics/docs"
	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Ghana cargo logistics backend...")

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

		if err := app.server.Listen(address); err != nil {
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

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to stdout, a rotated file, or both
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(rotated)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
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
// The search cache degrades to uncached lookups when disabled.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// startMetricsServer exposes Prometheus metrics on a separate port
func startMetricsServer(cfg config.MetricsConfig) func() {
	if !cfg.Enabled {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		log.Printf("Metrics server starting on :%d%s", cfg.Port, cfg.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// ensureAdminUser seeds the back-office account on first start
func ensureAdminUser(userRepo repository.UserRepository, cfg config.AdminConfig, bcryptCost int) error {
	if cfg.Username == "" || cfg.Password == "" {
		log.Println("Admin credentials not configured, skipping account seeding")
		return nil
	}

	existing, err := userRepo.ByUsername(context.Background(), cfg.Username)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	if err := userRepo.Save(context.Background(), user); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("Seeded admin user %q", cfg.Username)
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

	// Initialize repositories
	trackingRepo := repository.NewTrackingRecordRepository(db)
	searchLogRepo := repository.NewSearchLogRepository(db)
	statsRepo := repository.NewDailySearchStatsRepository(db)
	vesselRepo := repository.NewVesselRepository(db)
	userRepo := repository.NewUserRepository(db)

	if err := ensureAdminUser(userRepo, cfg.Admin, cfg.Security.BcryptCost); err != nil {
		return nil, err
	}

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	sheetsClient := services.NewSheetsClient(cfg.Sheets.APIKey, cfg.Sheets.RequestTimeout)

	// Initialize flows
	searchFlow := businessflow.NewTrackingSearchFlow(trackingRepo, searchLogRepo, statsRepo, rc, utils.UTCNow)
	adminFlow := businessflow.NewTrackingAdminFlow(trackingRepo, utils.UTCNow)
	syncFlow := businessflow.NewTrackingSyncFlow(trackingRepo, sheetsClient, cfg.Sheets, utils.UTCNow)
	retentionFlow := businessflow.NewRetentionFlow(trackingRepo, cfg.Retention.Days, utils.UTCNow)
	analyticsFlow := businessflow.NewSearchAnalyticsFlow(searchLogRepo, statsRepo, utils.UTCNow)
	vesselFlow := businessflow.NewVesselFlow(vesselRepo)
	authFlow := businessflow.NewAuthFlow(userRepo, tokenService, cfg.JWT.AccessTokenTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authFlow, cfg.Security)
	trackingHandler := handlers.NewTrackingHandler(searchFlow)
	trackingAdminHandler := handlers.NewTrackingAdminHandler(adminFlow, syncFlow, retentionFlow)
	searchLogAdminHandler := handlers.NewSearchLogAdminHandler(analyticsFlow)
	vesselHandler := handlers.NewVesselHandler(vesselFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(
		cfg,
		authMiddleware,
		authHandler,
		trackingHandler,
		trackingAdminHandler,
		searchLogAdminHandler,
		vesselHandler,
	)

	// Background workers
	syncSched := scheduler.NewSheetSyncScheduler(syncFlow, log.Default(), cfg.Scheduler.SyncInterval, cfg.Scheduler.InitialDelay)
	stopFuncs = append(stopFuncs, syncSched.Start(context.Background()))

	retentionSched := scheduler.NewRetentionScheduler(retentionFlow, log.Default(), cfg.Retention.SweepInterval)
	stopFuncs = append(stopFuncs, retentionSched.Start(context.Background()))

	stopFuncs = append(stopFuncs, startMetricsServer(cfg.Metrics))

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
