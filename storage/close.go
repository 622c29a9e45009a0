package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"FocusDesk/config"
	"FocusDesk/pkg/logger"
	"FocusDesk/storage/database"
	"FocusDesk/storage/mq"
	"FocusDesk/storage/redis"
)

const closeTimeout = 15 * time.Second

type closer struct {
	name  string
	close func(ctx context.Context) error
}

// Close 关闭 Init 打开过的后端。先停消息队列，不再发出新事件，再关持久化后端
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	for _, c := range selectedClosers(&config.Cfg) {
		if err := c.close(ctx); err != nil {
			logger.Logger.Error("Failed to close storage backend",
				zap.String("backend", c.name),
				zap.Error(err),
			)
			continue
		}
		logger.Logger.Info("Storage backend closed", zap.String("backend", c.name))
	}
}

// selectedClosers 与 Init 的选择保持一致
func selectedClosers(cfg *config.Config) []closer {
	var closers []closer

	if cfg.NotifyQueueEnabled {
		closers = append(closers, closer{"rabbitmq", mq.Close})
	}

	switch cfg.StorageDriver {
	case "sqlite", "postgres":
		closers = append(closers, closer{cfg.StorageDriver, database.Close})
	case "redis":
		closers = append(closers, closer{"redis", redis.Close})
	}

	return closers
}
