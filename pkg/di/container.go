package di

import (
	"time"

	"chat-session-demo/backend/internal/repository"
	"chat-session-demo/backend/internal/service"
	"chat-session-demo/backend/pkg/cache"
	"chat-session-demo/backend/pkg/config"
	"chat-session-demo/backend/pkg/health"
	"chat-session-demo/backend/pkg/logger"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB          *gorm.DB
	Logger      *logger.Logger
	Cache       *cache.Cache
	Store       repository.Store
	Responder   service.Responder
	ChatService *service.ChatService
	Health      *health.Checker
}

// Config holds the configuration for the container
type Config struct {
	LoggerConfig      logger.Config
	HealthCheckPeriod time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		LoggerConfig:      logger.DefaultConfig(),
		HealthCheckPeriod: 30 * time.Second,
	}
}

// New creates a new dependency injection container
func New(db *gorm.DB, cfg *Config) (*Container, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Initialize the logger
	log := logger.New(cfg.LoggerConfig)

	// Session list cache, disabled via config
	var listCache *cache.Cache
	if config.Get().Cache.Enabled {
		listCache = cache.NewCache()
	}

	// Store and service wiring
	store := repository.NewGormStore(db)
	responder := service.NewEchoResponder()
	chatService := service.NewChatService(store, responder, listCache)

	// Health checker with a database ping
	checker := health.NewChecker(log, cfg.HealthCheckPeriod)
	checker.RegisterDatabaseCheck(func() error {
		return config.TestConnection(db)
	})

	return &Container{
		DB:          db,
		Logger:      log,
		Cache:       listCache,
		Store:       store,
		Responder:   responder,
		ChatService: chatService,
		Health:      checker,
	}, nil
}
