package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/learnhub-service/internal/cache"
	"github.com/SAP-F-2025/learnhub-service/internal/config"
	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/handlers"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/fixture"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/memory"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
	"github.com/SAP-F-2025/learnhub-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			if cfg.SlotBackend == config.SlotBackendRedis {
				log.Fatalf("Failed to initialize Redis: %v", err)
			}
			logger.Warn("Redis unavailable, analytics cache disabled", "error", err)
			redisClient = nil
		}
	}
	cacheManager := cache.NewCacheManager(redisClient)

	// Initialize database (only the postgres slot backend needs one)
	var db *gorm.DB
	if cfg.SlotBackend == config.SlotBackendPostgres {
		db, err = pkg.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	}

	slotStore, err := pkg.NewSlotStore(cfg, cacheManager, db)
	if err != nil {
		log.Fatalf("Failed to open slot store: %v", err)
	}

	// Record cache, seeded lazily from the fixture
	repo := memory.NewRecordCache(fixture.NewSource(cfg.FixtureSource, cfg.FixtureTimeout), memory.Options{
		Latency:    cfg.SimulatedLatency,
		BcryptCost: cfg.BcryptCost,
		Logger:     slogLogger,
	})

	publisher, err := events.NewPublisher(cfg.KafkaBrokers, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	// Initialize validator
	validator := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(services.ServiceManagerConfig{
		Repo:      repo,
		Slots:     slotStore,
		Cache:     cacheManager,
		Validator: validator,
		Publisher: publisher,
		Logger:    slogLogger,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, repo.Account(), logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"fixture", cfg.FixtureSource,
			"slot_backend", cfg.SlotBackend,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Shutdown services (publisher, slot store, record cache)
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Close database connection
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
