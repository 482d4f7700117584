package repositories

import (
	"context"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
)

// Repository aggregates every record repository
type Repository interface {
	Account() AccountRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository

	// SiteStats returns the fixture's site-wide figures
	SiteStats(ctx context.Context) (models.SiteStats, error)

	// Revision increases on every successful mutation
	Revision() uint64

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
