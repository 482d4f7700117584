package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known slot keys
const (
	CurrentUserKey = "learnhubCurrentUser"
	FeedbackKey    = "learnhubFeedback"
)

var ErrSlotNotFound = errors.New("slot not found")

// Store persists small JSON documents by key. Deleting a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ScopedKey returns base for the empty scope and base:scope otherwise
func ScopedKey(base, scope string) string {
	if scope == "" {
		return base
	}
	return base + ":" + scope
}

func GetJSON[T any](ctx context.Context, s Store, key string) (*T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("slot %s holds invalid JSON: %w", key, err)
	}
	return &out, nil
}

func SetJSON[T any](ctx context.Context, s Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
