package storage

import (
	"FocusDesk/config"
	"FocusDesk/storage/database"
	"FocusDesk/storage/mq"
	"FocusDesk/storage/redis"
)

// Init 只初始化当前配置用到的后端
func Init() error {
	cfg := config.Cfg

	switch cfg.StorageDriver {
	case "sqlite", "postgres":
		if err := database.Init(); err != nil {
			return err
		}
	case "redis":
		if err := redis.Init(); err != nil {
			return err
		}
	}

	if cfg.NotifyQueueEnabled {
		if err := mq.Init(); err != nil {
			return err
		}
	}

	return nil
}
