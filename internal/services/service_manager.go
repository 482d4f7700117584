package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/learnhub-service/internal/cache"
	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/slots"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

// ServiceManagerConfig holds everything the services are built from
type ServiceManagerConfig struct {
	Repo      repositories.Repository
	Slots     slots.Store
	Cache     *cache.CacheManager
	Validator *validator.Validator
	Publisher events.EventPublisher
	Logger    *slog.Logger

	// Clock drives analytics windows and feedback timestamps; defaults to time.Now
	Clock func() time.Time
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	config ServiceManagerConfig
	logger *slog.Logger

	// Service instances
	sessions          *SessionManager
	accountService    AccountService
	courseService     CourseService
	enrollmentService EnrollmentService
	analyticsService  AnalyticsService
	feedbackService   FeedbackService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(config ServiceManagerConfig) ServiceManager {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Validator == nil {
		config.Validator = validator.New()
	}
	if config.Cache == nil {
		config.Cache = cache.NewCacheManager(nil)
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &serviceManager{config: config, logger: config.Logger}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	c := sm.config
	if c.Repo == nil || c.Slots == nil {
		return errors.New("service manager requires a repository and a slot store")
	}

	sm.analyticsService = NewAnalyticsService(c.Repo, c.Cache.Stats, c.Clock, sm.logger.With("service", "analytics"))
	sm.sessions = NewSessionManager(c.Repo, c.Slots, c.Validator, c.Publisher, sm.logger.With("service", "session"))
	sm.accountService = NewAccountService(c.Repo, c.Validator, c.Publisher, sm.logger.With("service", "account"))
	sm.courseService = NewCourseService(c.Repo, sm.analyticsService, c.Validator, c.Publisher, sm.logger.With("service", "course"))
	sm.enrollmentService = NewEnrollmentService(c.Repo, sm.analyticsService, c.Publisher, sm.logger.With("service", "enrollment"))
	sm.feedbackService = NewFeedbackService(c.Slots, c.Validator, c.Publisher, c.Clock, sm.logger.With("service", "feedback"))

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) mustBeReady() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Service getters
func (sm *serviceManager) Sessions() *SessionManager {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.sessions
}

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.accountService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.courseService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.enrollmentService
}

func (sm *serviceManager) Analytics() AnalyticsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.analyticsService
}

func (sm *serviceManager) Feedback() FeedbackService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.feedbackService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.config.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	// Redis is optional; only report it when configured
	if err := sm.config.Cache.HealthCheck(ctx); err != nil && !errors.Is(err, cache.ErrCacheNotAvailable) {
		return err
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	var errs []error
	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event publisher: %w", err))
		}
	}
	if err := sm.config.Slots.Close(); err != nil {
		errs = append(errs, fmt.Errorf("slot store: %w", err))
	}
	if err := sm.config.Repo.Close(); err != nil {
		errs = append(errs, fmt.Errorf("repository: %w", err))
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return errors.Join(errs...)
}

// IsInitialized returns whether the service manager has been initialized
func (sm *serviceManager) IsInitialized() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.initialized
}
