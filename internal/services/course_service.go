package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

type CourseService interface {
	ListPublished(ctx context.Context) ([]*models.Course, error)
	ListAll(ctx context.Context, actor *models.Account) ([]*models.Course, error)
	ListByInstructor(ctx context.Context, actor *models.Account, instructorID string) ([]*models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, actor *models.Account, req *models.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, actor *models.Account, id string, req *models.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, actor *models.Account, id string) error
	Students(ctx context.Context, actor *models.Account, id string) ([]*models.Account, error)
}

type courseService struct {
	repo           repositories.Repository
	analytics      AnalyticsService
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewCourseService(repo repositories.Repository, analytics AnalyticsService, validator *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) CourseService {
	return &courseService{
		repo:           repo,
		analytics:      analytics,
		validator:      validator,
		eventPublisher: publisher,
		logger:         logger,
	}
}

func (s *courseService) ListPublished(ctx context.Context) ([]*models.Course, error) {
	return s.repo.Course().ListPublished(ctx)
}

func (s *courseService) ListAll(ctx context.Context, actor *models.Account) ([]*models.Course, error) {
	if err := requireAdmin(actor, "course", "list"); err != nil {
		return nil, err
	}
	return s.repo.Course().List(ctx)
}

func (s *courseService) ListByInstructor(ctx context.Context, actor *models.Account, instructorID string) ([]*models.Course, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != instructorID {
		return nil, NewPermissionError(actor.ID, instructorID, "course", "list", "can only list own courses")
	}
	return s.repo.Course().ListByInstructor(ctx, instructorID)
}

func (s *courseService) Get(ctx context.Context, id string) (*models.Course, error) {
	return s.repo.Course().GetByID(ctx, id)
}

func (s *courseService) Create(ctx context.Context, actor *models.Account, req *models.CreateCourseRequest) (*models.Course, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	s.logger.Info("Creating course", "instructor_id", actor.ID, "title", req.Title)

	if actor.Role != models.RoleFaculty && !actor.IsAdmin() {
		return nil, NewPermissionError(actor.ID, "", "course", "create", "faculty or admin role required")
	}
	if errs := s.validator.GetBusinessValidator().ValidateCourseCreate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().Create(ctx, req.Input(), actor)
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.CourseCreated, events.CourseEventData{
		CourseID:     course.ID,
		Title:        course.Title,
		InstructorID: course.InstructorID,
		ActorID:      actor.ID,
	})
	return course, nil
}

func (s *courseService) Update(ctx context.Context, actor *models.Account, id string, req *models.UpdateCourseRequest) (*models.Course, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	s.logger.Info("Updating course", "course_id", id, "actor_id", actor.ID)

	if err := s.authorize(ctx, actor, id, "update"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	course, err := s.repo.Course().Update(ctx, id, req.Patch())
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.CourseUpdated, events.CourseEventData{
		CourseID:     course.ID,
		Title:        course.Title,
		InstructorID: course.InstructorID,
		ActorID:      actor.ID,
	})
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, actor *models.Account, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	s.logger.Info("Deleting course", "course_id", id, "actor_id", actor.ID)

	if err := s.authorize(ctx, actor, id, "delete"); err != nil {
		return err
	}
	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return err
	}

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.CourseDeleted, events.CourseEventData{
		CourseID: id,
		ActorID:  actor.ID,
	})
	return nil
}

func (s *courseService) Students(ctx context.Context, actor *models.Account, id string) ([]*models.Account, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, id, "view students of"); err != nil {
		return nil, err
	}
	return s.analytics.StudentsInCourse(ctx, id)
}

func (s *courseService) authorize(ctx context.Context, actor *models.Account, courseID, action string) error {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if canManageCourse(actor, course) {
		return nil
	}
	reason := "not the course instructor"
	if course.Unowned {
		reason = "course has no instructor; admin role required"
	}
	return NewPermissionError(actor.ID, courseID, "course", action, reason)
}
