package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/slots"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

type FeedbackService interface {
	// List seeds two sample items the first time the slot is read
	List(ctx context.Context) ([]models.FeedbackItem, error)
	Create(ctx context.Context, req *models.CreateFeedbackRequest) (*models.FeedbackItem, error)
	Update(ctx context.Context, id int64, patch *models.FeedbackPatch) (*models.FeedbackItem, error)
	Delete(ctx context.Context, id int64) error
}

type feedbackService struct {
	store          slots.Store
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	clock          func() time.Time
	logger         *slog.Logger

	// serialises read-modify-write of the slot
	mu sync.Mutex
}

func NewFeedbackService(store slots.Store, validator *validator.Validator, publisher events.EventPublisher, clock func() time.Time, logger *slog.Logger) FeedbackService {
	if clock == nil {
		clock = time.Now
	}
	return &feedbackService{
		store:          store,
		validator:      validator,
		eventPublisher: publisher,
		clock:          clock,
		logger:         logger,
	}
}

func (s *feedbackService) List(ctx context.Context) ([]models.FeedbackItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *feedbackService) Create(ctx context.Context, req *models.CreateFeedbackRequest) (*models.FeedbackItem, error) {
	if errs := s.validator.GetBusinessValidator().ValidateFeedback(req); len(errs) > 0 {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	ts := s.clock()
	id := ts.UnixMilli()
	for slices.ContainsFunc(items, func(f models.FeedbackItem) bool { return f.ID == id }) {
		id++
	}

	item := models.FeedbackItem{
		ID:        id,
		Author:    req.Author,
		Rating:    req.Rating,
		Message:   req.Message,
		Timestamp: ts,
	}
	items = append([]models.FeedbackItem{item}, items...)

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	s.logger.Info("Feedback created", "feedback_id", id, "rating", item.Rating)

	events.PublishSafe(ctx, s.eventPublisher, s.logger, events.FeedbackCreated, events.FeedbackEventData{
		FeedbackID: id,
		Author:     item.Author,
		Rating:     item.Rating,
	})
	return &item, nil
}

func (s *feedbackService) Update(ctx context.Context, id int64, patch *models.FeedbackPatch) (*models.FeedbackItem, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(items, func(f models.FeedbackItem) bool { return f.ID == id })
	if i < 0 {
		return nil, newServiceError(ErrFeedbackNotFound, MsgFeedbackNotFound)
	}

	patch.Apply(&items[i])
	items[i].Timestamp = s.clock()

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	item := items[i]
	return &item, nil
}

func (s *feedbackService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(items, func(f models.FeedbackItem) bool { return f.ID == id })
	if i < 0 {
		return newServiceError(ErrFeedbackNotFound, MsgFeedbackNotFound)
	}

	return s.save(ctx, slices.Delete(items, i, i+1))
}

// load expects s.mu to be held
func (s *feedbackService) load(ctx context.Context) ([]models.FeedbackItem, error) {
	items, err := slots.GetJSON[[]models.FeedbackItem](ctx, s.store, slots.FeedbackKey)
	if err == nil {
		if *items == nil {
			return []models.FeedbackItem{}, nil
		}
		return *items, nil
	}
	if !errors.Is(err, slots.ErrSlotNotFound) {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}

	seed := sampleFeedback(s.clock())
	if err := s.save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (s *feedbackService) save(ctx context.Context, items []models.FeedbackItem) error {
	if err := slots.SetJSON(ctx, s.store, slots.FeedbackKey, items); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

func sampleFeedback(at time.Time) []models.FeedbackItem {
	return []models.FeedbackItem{
		{ID: 1, Author: "Alice", Rating: 5, Message: "Great platform, very intuitive!", Timestamp: at.Add(-24 * time.Hour)},
		{ID: 2, Author: "Bob", Rating: 4, Message: "Found the course helpful, but could use more examples.", Timestamp: at.Add(-time.Hour)},
	}
}
