package repositories

import (
	"context"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
)

// AccountRepository covers account reads and writes
type AccountRepository interface {
	List(ctx context.Context) ([]*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// GetByUsername is an exact, case-sensitive match
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Create(ctx context.Context, in models.NewAccount) (*models.Account, error)
	Update(ctx context.Context, id string, patch models.AccountPatch) (*models.Account, error)
	// Delete does not touch courses owned by the account
	Delete(ctx context.Context, id string) error
}

// CourseRepository covers course reads and writes. Reads flag courses whose
// instructor no longer exists as Unowned.
type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	ListPublished(ctx context.Context) ([]*models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, in models.CourseInput, instructor *models.Account) (*models.Course, error)
	Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	// Delete removes the course from every enrollment set as well
	Delete(ctx context.Context, id string) error
}

// EnrollmentRepository mutates enrollment sets. Neither call is idempotent.
type EnrollmentRepository interface {
	Enroll(ctx context.Context, accountID, courseID string) (*models.Account, error)
	Unenroll(ctx context.Context, accountID, courseID string) (*models.Account, error)
}
