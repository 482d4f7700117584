package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatermillPublisher_GoChannel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pub, pubSub := NewGoChannelPublisher(testLogger())
	defer pub.Close()

	messages, err := pubSub.Subscribe(ctx, Topic(CourseCreated))
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	data := CourseEventData{CourseID: "course-1", Title: "Intro to Go"}
	if err := pub.Publish(ctx, CourseCreated, data); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		var got struct {
			Event
			Data CourseEventData `json:"data"`
		}
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != CourseCreated || got.Source != EventSource || got.Version != EventVersion {
			t.Errorf("unexpected envelope: %+v", got.Event)
		}
		if got.ID != msg.UUID {
			t.Errorf("message uuid %q does not match event id %q", msg.UUID, got.ID)
		}
		if got.Data.CourseID != "course-1" {
			t.Errorf("CourseID = %q", got.Data.CourseID)
		}
		if msg.Metadata.Get("event_type") != CourseCreated {
			t.Errorf("metadata event_type = %q", msg.Metadata.Get("event_type"))
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestNewPublisher_DefaultsToGoChannel(t *testing.T) {
	pub, err := NewPublisher(nil, testLogger())
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	defer pub.Close()

	if _, ok := pub.(*WatermillPublisher); !ok {
		t.Fatalf("unexpected publisher type %T", pub)
	}
	// No subscribers: publishing must still succeed
	if err := pub.Publish(context.Background(), FeedbackCreated, FeedbackEventData{FeedbackID: 1}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestPublishSafe_SwallowsErrors(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	mock.FailWith = errors.New("broker down")

	PublishSafe(context.Background(), mock, testLogger(), AccountDeleted, AccountEventData{AccountID: "u_1"})
	if len(mock.GetPublishedEvents()) != 0 {
		t.Fatal("failed publish must not record an event")
	}

	mock.FailWith = nil
	PublishSafe(context.Background(), mock, testLogger(), AccountDeleted, AccountEventData{AccountID: "u_1"})
	if got := mock.Types(); len(got) != 1 || got[0] != AccountDeleted {
		t.Fatalf("Types() = %v", got)
	}

	PublishSafe(context.Background(), nil, testLogger(), AccountDeleted, nil)
}
