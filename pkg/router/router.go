package router

import (
	"chat-session-demo/backend/internal/api"
	"chat-session-demo/backend/pkg/config"
	"chat-session-demo/backend/pkg/di"
	"chat-session-demo/backend/pkg/errors"
	"chat-session-demo/backend/pkg/logger"
	"chat-session-demo/backend/pkg/middleware"
	"chat-session-demo/backend/shared/observability"

	"github.com/gin-gonic/gin"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	// Use the container's logger
	logger.SetGlobal(container.Logger)

	// Load configuration
	cfg := config.Get()

	// Configure Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	engine := gin.New()

	// Propagate request IDs before anything that logs
	engine.Use(middleware.RequestIDMiddleware())

	// Use the logger middleware to capture all requests
	engine.Use(logger.Middleware(container.Logger))

	// Add custom error handler middleware
	engine.Use(errors.ErrorHandler())

	// Add custom recovery middleware with structured logging instead of default
	engine.Use(errors.RecoveryWithLogger())

	// Create rate limiter with default options
	rateLimiter := middleware.NewRateLimiter(container.Logger)

	// Apply rate limiting to all routes
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	// Add CORS middleware; the dispatch endpoint is open to any origin
	r.Engine.Use(corsMiddleware())

	chatController := api.NewChatController(r.Container.ChatService, r.Logger)

	// Root-level dispatch endpoint, matching the original contract
	chatController.RegisterRoutes(r.Engine)

	// API version 1 routes
	v1 := r.Engine.Group("/api/v1")
	chatController.RegisterRoutesV1(v1)

	// Health and metrics
	r.setupHealthRoutes()
	r.Engine.GET("/metrics", gin.WrapH(observability.MetricsHandler()))
}

// corsMiddleware permits cross-origin requests from any origin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
