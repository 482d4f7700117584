package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
	"github.com/google/uuid"
)

const joinedLayout = "2006-01-02"

type accountStore struct {
	c *RecordCache
}

func (s *accountStore) List(ctx context.Context) ([]*models.Account, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	out := make([]*models.Account, len(s.c.accounts))
	for i, a := range s.c.accounts {
		out[i] = a.Clone()
	}
	return out, nil
}

func (s *accountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	_, a := s.c.findAccount(id)
	if a == nil {
		return nil, repositories.NotFound(repositories.MsgUserNotFound)
	}
	return a.Clone(), nil
}

func (s *accountStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	a := s.c.findAccountByUsername(username)
	if a == nil {
		return nil, repositories.NotFound(repositories.MsgUserNotFound)
	}
	return a.Clone(), nil
}

func (s *accountStore) Create(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	// Hash outside the lock; bcrypt is slow on purpose
	hash, err := utils.HashPassword(in.Password, s.c.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if s.c.findAccountByUsername(in.Username) != nil {
		return nil, repositories.Conflict(repositories.MsgUsernameAlreadyExists)
	}

	acc := &models.Account{
		ID:              s.newID(role),
		Username:        in.Username,
		PasswordHash:    hash,
		Email:           in.Email,
		Role:            role,
		Status:          models.AccountActive,
		Joined:          s.c.opts.Clock().Format(joinedLayout),
		EnrolledCourses: []string{},
	}
	s.c.accounts = append(s.c.accounts, acc)
	s.c.bump()

	return acc.Clone(), nil
}

// newID builds "<role initial>_<random>" and retries on the unlikely collision
func (s *accountStore) newID(role models.AccountRole) string {
	prefix := string(role)[:1] + "_"
	for {
		id := prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		if _, existing := s.c.findAccount(id); existing == nil {
			return id
		}
	}
}

func (s *accountStore) Update(ctx context.Context, id string, patch models.AccountPatch) (*models.Account, error) {
	if err := s.c.prepare(ctx); err != nil {
		return nil, err
	}

	var hash string
	if patch.Password != nil {
		h, err := utils.HashPassword(*patch.Password, s.c.opts.BcryptCost)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	_, acc := s.c.findAccount(id)
	if acc == nil {
		return nil, repositories.NotFound(repositories.MsgUserNotFound)
	}
	if patch.Username != nil && *patch.Username != acc.Username {
		if s.c.findAccountByUsername(*patch.Username) != nil {
			return nil, repositories.Conflict(repositories.MsgUsernameAlreadyExists)
		}
	}

	patch.Apply(acc)
	if hash != "" {
		acc.PasswordHash = hash
	}
	s.c.bump()

	return acc.Clone(), nil
}

func (s *accountStore) Delete(ctx context.Context, id string) error {
	if err := s.c.prepare(ctx); err != nil {
		return err
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	i, acc := s.c.findAccount(id)
	if acc == nil {
		return repositories.NotFound(repositories.MsgUserNotFound)
	}
	s.c.accounts = append(s.c.accounts[:i], s.c.accounts[i+1:]...)
	s.c.bump()
	return nil
}
