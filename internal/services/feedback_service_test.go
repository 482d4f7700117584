package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/slots"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

func TestFeedbackService_SeedsOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.store, env.validator, env.publisher, testClock, env.logger)
	ctx := context.Background()

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[0].Author != "Alice" || items[1].ID != 2 || items[1].Author != "Bob" {
		t.Fatalf("seed = %+v", items)
	}
	if !items[0].Timestamp.Equal(testNow.Add(-24*time.Hour)) || !items[1].Timestamp.Equal(testNow.Add(-time.Hour)) {
		t.Errorf("seed timestamps = %v, %v", items[0].Timestamp, items[1].Timestamp)
	}

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, 2); err != nil {
		t.Fatal(err)
	}

	// an empty list is kept, not reseeded
	items, err = svc.List(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("after deleting all = %+v, %v", items, err)
	}
}

func TestFeedbackService_CreatePrependsWithUniqueIDs(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.store, env.validator, env.publisher, testClock, env.logger)
	ctx := context.Background()

	req := &models.CreateFeedbackRequest{Author: "Carol", Rating: 3, Message: "Decent selection of courses."}
	first, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != testNow.UnixMilli() {
		t.Errorf("first id = %d", first.ID)
	}
	if second.ID == first.ID {
		t.Fatal("ids collide within the same millisecond")
	}

	items, _ := svc.List(ctx)
	if len(items) != 4 || items[0].ID != second.ID || items[1].ID != first.ID || items[3].ID != 2 {
		t.Fatalf("order = %+v", items)
	}

	// persisted in the shared slot
	stored, err := slots.GetJSON[[]models.FeedbackItem](ctx, env.store, slots.FeedbackKey)
	if err != nil || len(*stored) != 4 {
		t.Fatalf("slot = %v, %v", stored, err)
	}
}

func TestFeedbackService_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.store, env.validator, env.publisher, testClock, env.logger)

	tests := []struct {
		name string
		req  models.CreateFeedbackRequest
	}{
		{name: "missing author", req: models.CreateFeedbackRequest{Rating: 4, Message: "Long enough message"}},
		{name: "rating too high", req: models.CreateFeedbackRequest{Author: "A", Rating: 6, Message: "Long enough message"}},
		{name: "short message", req: models.CreateFeedbackRequest{Author: "A", Rating: 4, Message: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			if _, ok := validator.AsValidationErrors(err); !ok {
				t.Fatalf("err = %v, want validation errors", err)
			}
		})
	}
}

func TestFeedbackService_CountsPaddingTowardsLength(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.store, env.validator, env.publisher, testClock, env.logger)

	item, err := svc.Create(context.Background(), &models.CreateFeedbackRequest{Author: "A", Rating: 4, Message: "   tiny     "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Message != "   tiny     " {
		t.Errorf("Message = %q, want it stored as typed", item.Message)
	}
}

func TestFeedbackService_UpdateRestamps(t *testing.T) {
	env := newTestEnv(t)
	current := testNow
	clock := func() time.Time { return current }
	svc := NewFeedbackService(env.store, env.validator, env.publisher, clock, env.logger)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatal(err)
	}

	current = testNow.Add(time.Minute)
	rating := 2
	item, err := svc.Update(ctx, 2, &models.FeedbackPatch{Rating: &rating})
	if err != nil {
		t.Fatal(err)
	}
	if item.Rating != 2 || item.Author != "Bob" || !item.Timestamp.Equal(current) {
		t.Errorf("updated = %+v", item)
	}

	_, err = svc.Update(ctx, 99, &models.FeedbackPatch{Rating: &rating})
	if !errors.Is(err, ErrFeedbackNotFound) || err.Error() != MsgFeedbackNotFound {
		t.Fatalf("missing update: %v", err)
	}
	if err := svc.Delete(ctx, 99); !errors.Is(err, ErrFeedbackNotFound) {
		t.Fatalf("missing delete: %v", err)
	}
}
