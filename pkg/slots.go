package pkg

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/learnhub-service/internal/cache"
	"github.com/SAP-F-2025/learnhub-service/internal/config"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories/slots"
)

// NewSlotStore picks the persisted-slot backend named by SLOT_BACKEND.
// The redis backend needs cm backed by a live client; postgres needs db.
func NewSlotStore(cfg *config.Config, cm *cache.CacheManager, db *gorm.DB) (slots.Store, error) {
	switch cfg.SlotBackend {
	case config.SlotBackendMemory:
		return slots.NewMemoryStore(), nil
	case config.SlotBackendBolt:
		return slots.OpenBolt(cfg.BoltPath)
	case config.SlotBackendRedis:
		if cm == nil || !cm.Slots.Available() {
			return nil, fmt.Errorf("slot backend %q needs a redis connection", cfg.SlotBackend)
		}
		return slots.NewRedisStore(cm.Slots), nil
	case config.SlotBackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("slot backend %q needs a database connection", cfg.SlotBackend)
		}
		return slots.NewGormStore(db)
	default:
		return nil, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
	}
}
