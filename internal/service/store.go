package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"FocusDesk/config"
	"FocusDesk/internal/cache"
	"FocusDesk/internal/persist"
	"FocusDesk/internal/repository"
)

const (
	breakerMaxFailures  = 3
	breakerResetTimeout = 30 * time.Second
)

// OpenStore 按 STORAGE_DRIVER 选择存储后端；对应的 storage 后端需已初始化。
// 外部后端包一层熔断，后端挂掉时快速失败，不拖慢每次操作。
func OpenStore(cfg *config.Config, log *zap.Logger) (persist.Store, error) {
	var store persist.Store

	switch cfg.StorageDriver {
	case "memory":
		return persist.NewMemory(), nil
	case "sqlite", "postgres":
		store = repository.DefaultKVStore()
	case "redis":
		store = cache.DefaultKVStore()
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	log.Info("Persistence backend selected", zap.String("driver", cfg.StorageDriver))
	return persist.NewBreakerStore(store, log.Named("breaker"), breakerMaxFailures, breakerResetTimeout), nil
}
