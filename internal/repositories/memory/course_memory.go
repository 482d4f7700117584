package memory

import (
	"context"
	"errors"
	"slices"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/google/uuid"
)

type courseStore struct {
	c *RecordCache
}

func (s *courseStore) list(ctx context.Context, keep func(*models.Course) bool) ([]*models.Course, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	out := make([]*models.Course, 0, len(s.c.courses))
	for _, course := range s.c.courses {
		if keep == nil || keep(course) {
			out = append(out, s.c.courseView(course))
		}
	}
	return out, nil
}

func (s *courseStore) List(ctx context.Context) ([]*models.Course, error) {
	return s.list(ctx, nil)
}

func (s *courseStore) ListPublished(ctx context.Context) ([]*models.Course, error) {
	return s.list(ctx, (*models.Course).IsPublished)
}

func (s *courseStore) ListByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	return s.list(ctx, func(c *models.Course) bool { return c.InstructorID == instructorID })
}

func (s *courseStore) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	_, course := s.c.findCourse(id)
	if course == nil {
		return nil, repositories.NotFound(repositories.MsgCourseNotFound)
	}
	return s.c.courseView(course), nil
}

func (s *courseStore) Create(ctx context.Context, in models.CourseInput, instructor *models.Account) (*models.Course, error) {
	if instructor == nil {
		return nil, errors.New("instructor is required")
	}
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}

	price, _ := models.ParsePrice(in.Price)
	status := in.Status
	if !status.Valid() {
		status = models.CourseDraft
	}

	course := &models.Course{
		ID:             "course-" + uuid.NewString(),
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		Price:          price,
		Duration:       in.Duration,
		Status:         status,
		InstructorID:   instructor.ID,
		InstructorName: instructor.Username,
		Image:          in.Image,
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	s.c.courses = append(s.c.courses, course)
	s.c.bump()

	return s.c.courseView(course), nil
}

func (s *courseStore) Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	_, course := s.c.findCourse(id)
	if course == nil {
		return nil, repositories.NotFound(repositories.MsgCourseNotFound)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		patch.Status = nil
	}
	patch.Apply(course)
	s.c.bump()

	return s.c.courseView(course), nil
}

func (s *courseStore) Delete(ctx context.Context, id string) error {
	if err := s.c.prepare(ctx); err != nil {
		return err
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	i, course := s.c.findCourse(id)
	if course == nil {
		return repositories.NotFound(repositories.MsgCourseNotFound)
	}
	s.c.courses = append(s.c.courses[:i], s.c.courses[i+1:]...)

	for _, acc := range s.c.accounts {
		acc.EnrolledCourses = slices.DeleteFunc(acc.EnrolledCourses, func(cid string) bool { return cid == id })
	}
	s.c.bump()
	return nil
}
