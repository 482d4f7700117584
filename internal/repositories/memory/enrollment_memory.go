package memory

import (
	"context"
	"slices"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
)

type enrollmentStore struct {
	c *RecordCache
}

func (s *enrollmentStore) Enroll(ctx context.Context, accountID, courseID string) (*models.Account, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	_, acc := s.c.findAccount(accountID)
	_, course := s.c.findCourse(courseID)
	if acc == nil || course == nil {
		return nil, repositories.NotFound(repositories.MsgUserOrCourseNotFound)
	}
	if acc.IsEnrolled(courseID) {
		return nil, repositories.Conflict(repositories.MsgAlreadyEnrolled)
	}

	acc.EnrolledCourses = append(acc.EnrolledCourses, courseID)
	s.c.bump()
	return acc.Clone(), nil
}

func (s *enrollmentStore) Unenroll(ctx context.Context, accountID, courseID string) (*models.Account, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	_, acc := s.c.findAccount(accountID)
	if acc == nil {
		return nil, repositories.NotFound(repositories.MsgUserNotFound)
	}
	i := slices.Index(acc.EnrolledCourses, courseID)
	if i < 0 {
		return nil, repositories.NotFound(repositories.MsgNotEnrolled)
	}

	acc.EnrolledCourses = slices.Delete(acc.EnrolledCourses, i, i+1)
	s.c.bump()
	return acc.Clone(), nil
}
