package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
)

// MockFailingRepository for testing - every record operation fails
type MockFailingRepository struct{}

var errStoreDown = errors.New("store down")

func (m *MockFailingRepository) Account() repositories.AccountRepository       { return failingAccounts{} }
func (m *MockFailingRepository) Course() repositories.CourseRepository         { return nil }
func (m *MockFailingRepository) Enrollment() repositories.EnrollmentRepository { return nil }
func (m *MockFailingRepository) SiteStats(ctx context.Context) (models.SiteStats, error) {
	return models.SiteStats{}, errStoreDown
}
func (m *MockFailingRepository) Revision() uint64               { return 0 }
func (m *MockFailingRepository) Ping(ctx context.Context) error { return errStoreDown }
func (m *MockFailingRepository) Close() error                   { return nil }

type failingAccounts struct{ repositories.AccountRepository }

func (failingAccounts) List(ctx context.Context) ([]*models.Account, error) {
	return nil, errStoreDown
}

func (failingAccounts) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return nil, errStoreDown
}

func TestEventPublishing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("LoginPublishesSessionEvent", func(t *testing.T) {
		env.publisher.ClearEvents()

		if _, err := env.sessions().Open(ctx, "ev").Login(ctx, "prof", "prof123"); err != nil {
			t.Fatalf("Login: %v", err)
		}

		published := env.publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		event := published[0]
		if event.Type != events.SessionLoggedIn || event.Source != events.EventSource {
			t.Errorf("unexpected envelope: %+v", event)
		}
		data, ok := event.Data.(events.AccountEventData)
		if !ok || data.AccountID != "f1" || data.Role != "faculty" {
			t.Errorf("unexpected data: %#v", event.Data)
		}
	})

	t.Run("PublisherFailureDoesNotFailOperation", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		failing := events.NewMockEventPublisher(logger)
		failing.FailWith = errors.New("broker unavailable")

		svc := NewEnrollmentService(env.repo, env.analytics(), failing, logger)
		acc, err := svc.Enroll(ctx, env.account(t, "f2"), "c1")
		if err != nil {
			t.Fatalf("Enroll should succeed without the broker: %v", err)
		}
		if !acc.IsEnrolled("c1") {
			t.Error("enrollment not applied")
		}
	})

	t.Run("StoreFailurePropagates", func(t *testing.T) {
		repo := &MockFailingRepository{}
		svc := NewAnalyticsService(repo, nil, testClock, env.logger)

		_, err := svc.DashboardStats(ctx, &models.Account{ID: "a1", Role: models.RoleAdmin})
		if !errors.Is(err, errStoreDown) {
			t.Fatalf("err = %v, want wrapped store error", err)
		}

		session := NewSessionManager(repo, env.store, env.validator, env.publisher, env.logger).Open(ctx, "down")
		_, err = session.Login(ctx, "prof", "prof123")
		if !errors.Is(err, errStoreDown) || errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login err = %v", err)
		}
	})
}
