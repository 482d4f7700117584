package slots

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/learnhub-service/internal/cache"
)

// RedisStore keeps slots as non-expiring redis strings under the slot: prefix.
// The redis client is owned by the caller.
type RedisStore struct {
	helper *cache.CacheHelper
}

func NewRedisStore(helper *cache.CacheHelper) *RedisStore {
	return &RedisStore{helper: helper}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.helper.GetString(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return []byte(v), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.helper.SetString(ctx, key, string(value), cache.SlotCacheConfig.TTL)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.helper.Delete(ctx, key)
}

func (s *RedisStore) Close() error { return nil }
