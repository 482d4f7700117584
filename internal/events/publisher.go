package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data any) error
	Close() error
}

// WatermillPublisher sends events through any watermill message.Publisher
type WatermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewWatermillPublisher(publisher message.Publisher, logger *slog.Logger) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher, logger: logger}
}

// NewGoChannelPublisher builds an in-process publisher. The returned GoChannel
// can also be used to subscribe.
func NewGoChannelPublisher(logger *slog.Logger) (*WatermillPublisher, *gochannel.GoChannel) {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return NewWatermillPublisher(pubSub, logger), pubSub
}

// NewKafkaPublisher builds a publisher that writes to the given brokers
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*WatermillPublisher, error) {
	pub, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return NewWatermillPublisher(pub, logger), nil
}

// NewPublisher selects kafka when brokers are configured, gochannel otherwise
func NewPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	if len(brokers) > 0 {
		logger.Info("Using kafka event publisher", "brokers", brokers)
		return NewKafkaPublisher(brokers, logger)
	}
	logger.Info("Using in-process event publisher")
	pub, _ := NewGoChannelPublisher(logger)
	return pub, nil
}

func (p *WatermillPublisher) Publish(ctx context.Context, eventType string, data any) error {
	event := NewEvent(eventType, data)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", eventType)
	msg.Metadata.Set("source", EventSource)

	if err := p.publisher.Publish(Topic(eventType), msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	p.logger.Debug("Event published", "event_type", eventType, "event_id", event.ID)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// PublishSafe publishes and logs failures instead of returning them
func PublishSafe(ctx context.Context, publisher EventPublisher, logger *slog.Logger, eventType string, data any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, eventType, data); err != nil {
		logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}
