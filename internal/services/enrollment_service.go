package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, actor *models.Account, courseID string) (*models.Account, error)
	Unenroll(ctx context.Context, actor *models.Account, courseID string) (*models.Account, error)
	EnrolledCourses(ctx context.Context, actor *models.Account) ([]*models.Course, error)
}

type enrollmentService struct {
	repo           repositories.Repository
	analytics      AnalyticsService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewEnrollmentService(repo repositories.Repository, analytics AnalyticsService, publisher events.EventPublisher, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:           repo,
		analytics:      analytics,
		eventPublisher: publisher,
		logger:         logger,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, actor *models.Account, courseID string) (*models.Account, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	s.logger.Info("Enrolling", "account_id", actor.ID, "course_id", courseID)

	acc, err := s.repo.Enrollment().Enroll(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.EnrollmentCreated, events.EnrollmentEventData{
		AccountID: actor.ID,
		CourseID:  courseID,
	})
	return acc, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, actor *models.Account, courseID string) (*models.Account, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	s.logger.Info("Unenrolling", "account_id", actor.ID, "course_id", courseID)

	acc, err := s.repo.Enrollment().Unenroll(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.EnrollmentRemoved, events.EnrollmentEventData{
		AccountID: actor.ID,
		CourseID:  courseID,
	})
	return acc, nil
}

func (s *enrollmentService) EnrolledCourses(ctx context.Context, actor *models.Account) ([]*models.Course, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.analytics.EnrolledCourses(ctx, actor.ID)
}
