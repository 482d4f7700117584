package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

type AccountService interface {
	List(ctx context.Context, actor *models.Account) ([]*models.Account, error)
	Get(ctx context.Context, actor *models.Account, id string) (*models.Account, error)
	// Update is allowed to admins and to the account itself; only admins may change role or status
	Update(ctx context.Context, actor *models.Account, id string, req *models.UpdateAccountRequest) (*models.Account, error)
	Delete(ctx context.Context, actor *models.Account, id string) error
}

type accountService struct {
	repo           repositories.Repository
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewAccountService(repo repositories.Repository, validator *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) AccountService {
	return &accountService{
		repo:           repo,
		validator:      validator,
		eventPublisher: publisher,
		logger:         logger,
	}
}

func (s *accountService) List(ctx context.Context, actor *models.Account) ([]*models.Account, error) {
	if err := requireAdmin(actor, "account", "list"); err != nil {
		return nil, err
	}
	return s.repo.Account().List(ctx)
}

func (s *accountService) Get(ctx context.Context, actor *models.Account, id string) (*models.Account, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.repo.Account().GetByID(ctx, id)
}

func (s *accountService) Update(ctx context.Context, actor *models.Account, id string, req *models.UpdateAccountRequest) (*models.Account, error) {
	s.logger.Info("Updating account", "account_id", id)

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if actor.ID != id {
			return nil, NewPermissionError(actor.ID, id, "account", "update", "not the account owner")
		}
		if req.Role != nil || req.Status != nil {
			return nil, NewPermissionError(actor.ID, id, "account", "update", "only admins may change role or status")
		}
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	acc, err := s.repo.Account().Update(ctx, id, req.Patch())
	if err != nil {
		return nil, err
	}

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.AccountUpdated, events.AccountEventData{
		AccountID: acc.ID,
		Username:  acc.Username,
		Role:      string(acc.Role),
	})
	return acc, nil
}

func (s *accountService) Delete(ctx context.Context, actor *models.Account, id string) error {
	s.logger.Info("Deleting account", "account_id", id)

	if err := requireAdmin(actor, "account", "delete"); err != nil {
		return err
	}
	if actor.ID == id {
		return NewPermissionError(actor.ID, id, "account", "delete", "admins cannot delete themselves")
	}

	if err := s.repo.Account().Delete(ctx, id); err != nil {
		return err
	}

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.AccountDeleted, events.AccountEventData{AccountID: id})
	return nil
}
