package memory

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/fixture"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

// Options tunes a RecordCache
type Options struct {
	// Latency is waited before every operation
	Latency    time.Duration
	BcryptCost int
	Clock      func() time.Time
	Logger     *slog.Logger
}

// RecordCache is the in-memory store of accounts and courses. It is seeded
// from a fixture on first use and never written back.
type RecordCache struct {
	loader fixture.Loader
	opts   Options
	logger *slog.Logger

	loadOnce sync.Once

	mu       sync.RWMutex
	accounts []*models.Account
	courses  []*models.Course
	stats    models.SiteStats

	revision atomic.Uint64

	account    *accountStore
	course     *courseStore
	enrollment *enrollmentStore
}

func NewRecordCache(loader fixture.Loader, opts Options) *RecordCache {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &RecordCache{
		loader: loader,
		opts:   opts,
		logger: opts.Logger.With("component", "record_cache"),
	}
	c.account = &accountStore{c: c}
	c.course = &courseStore{c: c}
	c.enrollment = &enrollmentStore{c: c}
	return c
}

func (c *RecordCache) Account() repositories.AccountRepository {
	return c.account
}

func (c *RecordCache) Course() repositories.CourseRepository {
	return c.course
}

func (c *RecordCache) Enrollment() repositories.EnrollmentRepository {
	return c.enrollment
}

func (c *RecordCache) SiteStats(ctx context.Context) (models.SiteStats, error) {
	if err := c.prepare(ctx); err != nil {
		return models.SiteStats{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats, nil
}

func (c *RecordCache) Revision() uint64 {
	return c.revision.Load()
}

func (c *RecordCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (c *RecordCache) Close() error {
	return nil
}

// prepare waits the configured latency and makes sure the fixture is loaded
func (c *RecordCache) prepare(ctx context.Context) error {
	if c.opts.Latency > 0 {
		timer := time.NewTimer(c.opts.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	// A cancelled first caller must not leave the cache permanently empty
	c.loadOnce.Do(func() { c.load(context.WithoutCancel(ctx)) })
	return nil
}

// load runs once. Any failure leaves empty collections and is not retried.
func (c *RecordCache) load(ctx context.Context) {
	accounts := []*models.Account{}
	courses := []*models.Course{}
	var stats models.SiteStats

	f, err := c.loader.Load(ctx)
	if err == nil && f == nil {
		err = errors.New("fixture loader returned no document")
	}
	if err == nil {
		accounts, err = c.seedAccounts(f.Users)
	}
	if err != nil {
		c.logger.Error("Failed to load fixture, starting with empty collections", "error", err)
		accounts = []*models.Account{}
	} else {
		for _, fc := range f.Courses {
			courses = append(courses, fc.Course())
		}
		stats = f.SiteStats
		c.logger.Info("Record cache loaded",
			"users", len(accounts),
			"courses", len(courses))
	}

	c.mu.Lock()
	c.accounts = accounts
	c.courses = courses
	c.stats = stats
	c.mu.Unlock()
}

func (c *RecordCache) seedAccounts(users []models.FixtureUser) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0, len(users))
	for _, u := range users {
		hash, err := utils.HashPassword(u.Password, c.opts.BcryptCost)
		if err != nil {
			return nil, err
		}
		role := u.Role
		if !role.Valid() {
			role = models.RoleUser
		}
		status := u.Status
		if !status.Valid() {
			status = models.AccountActive
		}
		acc := &models.Account{
			ID:              u.ID,
			Username:        u.Username,
			PasswordHash:    hash,
			Email:           u.Email,
			Role:            role,
			Status:          status,
			Joined:          u.Joined,
			EnrolledCourses: append([]string{}, u.EnrolledCourses...),
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (c *RecordCache) bump() {
	c.revision.Add(1)
}

// The find helpers expect c.mu to be held

func (c *RecordCache) findAccount(id string) (int, *models.Account) {
	for i, a := range c.accounts {
		if a.ID == id {
			return i, a
		}
	}
	return -1, nil
}

func (c *RecordCache) findAccountByUsername(username string) *models.Account {
	for _, a := range c.accounts {
		if a.Username == username {
			return a
		}
	}
	return nil
}

func (c *RecordCache) findCourse(id string) (int, *models.Course) {
	for i, course := range c.courses {
		if course.ID == id {
			return i, course
		}
	}
	return -1, nil
}

// courseView copies a course and flags it when its instructor is gone
func (c *RecordCache) courseView(course *models.Course) *models.Course {
	out := course.Clone()
	_, owner := c.findAccount(course.InstructorID)
	out.Unowned = owner == nil
	return out
}
