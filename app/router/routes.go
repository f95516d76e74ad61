// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/app/handlers"
	"github.com/edzeame-del/ghana-cargo-logistics/app/middleware"
	"github.com/edzeame-del/ghana-cargo-logistics/config"
	_ "github.com/edzeame-del/ghana-cargo-logistics/docs"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app                   *fiber.App
	cfg                   *config.ProductionConfig
	authMiddleware        *middleware.AuthMiddleware
	authHandler           handlers.AuthHandlerInterface
	trackingHandler       handlers.TrackingHandlerInterface
	trackingAdminHandler  handlers.TrackingAdminHandlerInterface
	searchLogAdminHandler handlers.SearchLogAdminHandlerInterface
	vesselHandler         handlers.VesselHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	authMiddleware *middleware.AuthMiddleware,
	authHandler handlers.AuthHandlerInterface,
	trackingHandler handlers.TrackingHandlerInterface,
	trackingAdminHandler handlers.TrackingAdminHandlerInterface,
	searchLogAdminHandler handlers.SearchLogAdminHandlerInterface,
	vesselHandler handlers.VesselHandlerInterface,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Ghana Cargo Logistics API",
		ServerHeader: "ghana-cargo-logistics",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:                   app,
		cfg:                   cfg,
		authMiddleware:        authMiddleware,
		authHandler:           authHandler,
		trackingHandler:       trackingHandler,
		trackingAdminHandler:  trackingAdminHandler,
		searchLogAdminHandler: searchLogAdminHandler,
		vesselHandler:         vesselHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// Swagger JSON (development only)
	if r.cfg.Deployment.Environment == "development" || r.cfg.Deployment.Environment == "local" {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		log.Println("API documentation enabled for development")
	}

	// General rate limiting for all API routes
	api.Use(r.rateLimiter(r.cfg.Security.GlobalRateLimit, func(c fiber.Ctx) bool {
		return c.Path() == "/api/v1/health"
	}))

	// Public cargo lookup with its own limiter
	tracking := api.Group("/tracking")
	tracking.Use(r.rateLimiter(r.cfg.Security.SearchRateLimit, nil))
	tracking.Get("/:term", r.trackingHandler.Search)

	// Public vessel catalog
	api.Get("/vessels", r.vesselHandler.List)
	api.Get("/vessels/:id", r.vesselHandler.Get)

	// Staff endpoints
	admin := api.Group("/admin")

	auth := admin.Group("/auth")
	auth.Use(r.rateLimiter(r.cfg.Security.AuthRateLimit, nil))
	auth.Post("/login", r.authHandler.Login)
	auth.Post("/logout", r.authHandler.Logout)

	protected := admin.Group("", r.authMiddleware.Authenticate())

	protected.Get("/tracking", r.trackingAdminHandler.List)
	protected.Get("/tracking/search/:term", r.trackingAdminHandler.Search)
	protected.Post("/tracking/upload", r.trackingAdminHandler.Upload)
	protected.Post("/tracking/upload-file", r.trackingAdminHandler.UploadFile)
	protected.Get("/tracking/export", r.trackingAdminHandler.Export)
	protected.Delete("/tracking/bulk-delete", r.trackingAdminHandler.BulkDelete)
	protected.Post("/tracking/cleanup", r.trackingAdminHandler.Cleanup)
	protected.Post("/tracking/sync", r.trackingAdminHandler.Sync)
	protected.Get("/tracking/sync-status", r.trackingAdminHandler.SyncStatus)

	protected.Get("/search-logs", r.searchLogAdminHandler.Logs)
	protected.Get("/search-heatmap", r.searchLogAdminHandler.Heatmap)
	protected.Get("/search-stats", r.searchLogAdminHandler.Stats)

	protected.Post("/vessels", r.vesselHandler.Create)
	protected.Put("/vessels/:id", r.vesselHandler.Update)
	protected.Delete("/vessels/:id", r.vesselHandler.Delete)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         r.cfg.Security.XFrameOptions,
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: r.cfg.Security.CSPPolicy,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// CORS middleware with production settings
	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     r.cfg.Security.AllowedOrigins,
		AllowMethods:     r.cfg.Security.AllowedMethods,
		AllowHeaders:     r.cfg.Security.AllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: r.cfg.Security.AllowCredentials,
		MaxAge:           r.cfg.Security.CORSMaxAge,
	}))

	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.Level(r.cfg.Server.CompressionLevel),
		}))
	}

	// Structured access logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			// Skip logging for health checks in production
			return c.Path() == "/api/v1/health"
		},
	}))

	// Prometheus request metrics
	r.app.Use(middleware.Metrics())

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
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

// rateLimiter builds a per-IP limiter with a shared rejection response
func (r *FiberRouter) rateLimiter(maxPerWindow int, next func(fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxPerWindow,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: next,
	})
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

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   r.cfg.Deployment.Version,
			"service":   "ghana-cargo-logistics-api",
		},
	})
}

// Serve Swagger JSON specification
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	swaggerData, err := os.ReadFile("docs/swagger.json")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(swaggerData)
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	return uuid.New().String()
}
