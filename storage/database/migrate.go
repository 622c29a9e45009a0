package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"FocusDesk/internal/model"
	"FocusDesk/pkg/logger"
)

// Migrate 创建 kv_entries 表
func Migrate(db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}

	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
