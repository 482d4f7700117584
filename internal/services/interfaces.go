package services

import "context"

// ServiceManager owns every service and their shared dependencies
type ServiceManager interface {
	Sessions() *SessionManager
	Account() AccountService
	Course() CourseService
	Enrollment() EnrollmentService
	Analytics() AnalyticsService
	Feedback() FeedbackService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
	IsInitialized() bool
}
