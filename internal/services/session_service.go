package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/slots"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

// SessionManager opens sessions bound to a persisted slot scope
type SessionManager struct {
	repo           repositories.Repository
	store          slots.Store
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewSessionManager(repo repositories.Repository, store slots.Store, validator *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) *SessionManager {
	return &SessionManager{
		repo:           repo,
		store:          store,
		validator:      validator,
		eventPublisher: publisher,
		logger:         logger,
	}
}

// Open restores the identity persisted under scope. A missing or corrupt
// slot yields an anonymous session.
func (m *SessionManager) Open(ctx context.Context, scope string) *Session {
	s := &Session{manager: m, scope: scope}

	acc, err := slots.GetJSON[models.Account](ctx, m.store, s.key())
	switch {
	case err == nil:
		s.current = acc
	case errors.Is(err, slots.ErrSlotNotFound):
	default:
		m.logger.Warn("Failed to restore session, continuing anonymous", "scope", scope, "error", err)
	}

	return s
}

// Session is either anonymous or holds one authenticated account
type Session struct {
	manager *SessionManager
	scope   string

	mu      sync.Mutex
	current *models.Account
}

func (s *Session) key() string {
	return slots.ScopedKey(slots.CurrentUserKey, s.scope)
}

func (s *Session) Scope() string {
	return s.scope
}

// Current returns a copy of the signed-in account, or nil
func (s *Session) Current() *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *Session) Login(ctx context.Context, username, password string) (*models.Account, error) {
	m := s.manager
	m.logger.Info("Login attempt", "username", username)

	acc, err := m.repo.Account().GetByUsername(ctx, username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, newServiceError(ErrInvalidCredentials, MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !utils.CheckPasswordHash(password, acc.PasswordHash) {
		return nil, newServiceError(ErrInvalidCredentials, MsgInvalidCredentials)
	}
	if acc.Status == models.AccountInactive {
		m.logger.Info("Login rejected for inactive account", "account_id", acc.ID)
		return nil, newServiceError(ErrAccountInactive, MsgAccountInactive)
	}

	if err := s.persist(ctx, acc); err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, m.eventPublisher, m.logger, events.SessionLoggedIn, events.AccountEventData{
		AccountID: acc.ID,
		Username:  acc.Username,
		Role:      string(acc.Role),
	})
	return acc.Clone(), nil
}

func (s *Session) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	m := s.manager
	m.logger.Info("Registering account", "username", req.Username, "role", req.Role)

	if errs := m.validator.GetBusinessValidator().ValidateRegistration(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := m.repo.Account().GetByUsername(ctx, req.Username); err == nil {
		return nil, repositories.Conflict(repositories.MsgUsernameAlreadyExists)
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	acc, err := m.repo.Account().Create(ctx, models.NewAccount{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, acc); err != nil {
		// Without a session the caller cannot use the account, so free the username again
		if delErr := m.repo.Account().Delete(ctx, acc.ID); delErr != nil {
			m.logger.Error("Registered account left without a session", "account_id", acc.ID, "error", delErr)
		} else {
			m.logger.Warn("Registration rolled back", "account_id", acc.ID, "error", err)
		}
		return nil, err
	}

	events.PublishSafe(ctx, m.eventPublisher, m.logger, events.AccountRegistered, events.AccountEventData{
		AccountID: acc.ID,
		Username:  acc.Username,
		Role:      string(acc.Role),
	})
	return acc.Clone(), nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if err := s.manager.store.Delete(ctx, s.key()); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if prev != nil {
		events.PublishSafe(ctx, s.manager.eventPublisher, s.manager.logger, events.SessionLoggedOut, events.AccountEventData{
			AccountID: prev.ID,
			Username:  prev.Username,
		})
	}
	return nil
}

// UpdateCurrent merges patch into the signed-in identity and persists it.
// It does nothing while anonymous.
func (s *Session) UpdateCurrent(ctx context.Context, patch models.AccountPatch) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	updated := s.current.Clone()
	s.mu.Unlock()

	patch.Apply(updated)
	return s.persist(ctx, updated)
}

// Refresh replaces the identity with acc when it is the same account
func (s *Session) Refresh(ctx context.Context, acc *models.Account) error {
	s.mu.Lock()
	same := s.current != nil && acc != nil && s.current.ID == acc.ID
	s.mu.Unlock()
	if !same {
		return nil
	}
	return s.persist(ctx, acc)
}

func (s *Session) persist(ctx context.Context, acc *models.Account) error {
	stored := acc.Clone()
	stored.PasswordHash = ""

	if err := slots.SetJSON(ctx, s.manager.store, s.key(), stored); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.current = stored
	s.mu.Unlock()
	return nil
}
