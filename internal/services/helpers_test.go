package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/fixture"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/memory"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/slots"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func servicesFixture() *models.Fixture {
	return &models.Fixture{
		Users: []models.FixtureUser{
			{ID: "a1", Username: "admin", Password: "admin123", Email: "admin@example.com", Role: models.RoleAdmin, Status: models.AccountActive, Joined: "2024-01-01"},
			{ID: "f1", Username: "prof", Password: "prof123", Email: "prof@example.com", Role: models.RoleFaculty, Status: models.AccountActive, Joined: "2024-02-20"},
			{ID: "f2", Username: "lecturer", Password: "lect123", Email: "lect@example.com", Role: models.RoleFaculty, Status: models.AccountActive, Joined: "2024-03-01"},
			{ID: "u1", Username: "alice", Password: "alice123", Email: "alice@example.com", Role: models.RoleUser, Status: models.AccountActive, Joined: "2024-03-14", EnrolledCourses: []string{"c1", "c2"}},
			{ID: "u2", Username: "bob", Password: "bob123", Email: "bob@example.com", Role: models.RoleUser, Status: models.AccountInactive, Joined: "2024-03-15", EnrolledCourses: []string{"c4", "c1"}},
		},
		Courses: []models.FixtureCourse{
			{ID: "c1", Title: "Go Basics", Category: "Programming", Price: 20.0, Status: models.CoursePublished, InstructorID: "f1", InstructorName: "prof"},
			{ID: "c2", Title: "Design 101", Category: "Design", Price: 15.0, Status: models.CourseDraft, InstructorID: "f1", InstructorName: "prof"},
			{ID: "c3", Title: "Legacy", Category: "Programming", Price: 5.0, Status: models.CoursePublished, InstructorID: "gone", InstructorName: "ghost"},
			{ID: "c4", Title: "Accounting", Category: "Business", Price: 30.0, Status: models.CoursePublished, InstructorID: "f2", InstructorName: "lecturer"},
		},
		SiteStats: models.SiteStats{TotalRevenue: 4321},
	}
}

type testEnv struct {
	repo      *memory.RecordCache
	store     *slots.MemoryStore
	publisher *events.MockEventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := discardLogger()
	return &testEnv{
		repo: memory.NewRecordCache(fixture.Static{Fixture: servicesFixture()}, memory.Options{
			BcryptCost: bcrypt.MinCost,
			Clock:      testClock,
			Logger:     logger,
		}),
		store:     slots.NewMemoryStore(),
		publisher: events.NewMockEventPublisher(logger),
		validator: validator.New(),
		logger:    logger,
	}
}

func (e *testEnv) sessions() *SessionManager {
	return NewSessionManager(e.repo, e.store, e.validator, e.publisher, e.logger)
}

func (e *testEnv) analytics() AnalyticsService {
	return NewAnalyticsService(e.repo, nil, testClock, e.logger)
}

func (e *testEnv) account(t *testing.T, id string) *models.Account {
	t.Helper()
	acc, err := e.repo.Account().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("account %s: %v", id, err)
	}
	return acc
}
