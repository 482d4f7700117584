package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRecord is one row of the slots table
type SlotRecord struct {
	Key       string         `gorm:"column:slot_key;primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"column:value;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (SlotRecord) TableName() string {
	return "slots"
}

// GormStore keeps slots in a SQL table through gorm
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the slots table and returns the store
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&SlotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec SlotRecord
	err := s.db.WithContext(ctx).
		Where("slot_key = ?", key).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return []byte(rec.Value), nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	rec := SlotRecord{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("slot_key = ?", key).
		Delete(&SlotRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

// Close is a no-op; the *gorm.DB is owned by the caller
func (s *GormStore) Close() error { return nil }
