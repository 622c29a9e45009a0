package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"FocusDesk/internal/model"
	"FocusDesk/internal/persist"
	"FocusDesk/storage/database"
)

// KVStore 把每个 key 存成 kv_entries 表中的一行
type KVStore struct {
	db *gorm.DB
}

func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// DefaultKVStore 使用全局数据库连接，需先调用 database.Init
func DefaultKVStore() *KVStore {
	return NewKVStore(database.DB())
}

func (s *KVStore) Load(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s from database: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Save 以 upsert 方式写入，冲突时只更新 value 和 updated_at
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{Key: key, Value: string(value)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save %s to database: %w", key, err)
	}
	return nil
}
