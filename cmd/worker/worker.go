package main

// worker 消费倒计时完成事件，示例下游：记录完成的专注时段

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"FocusDesk/config"
	"FocusDesk/internal/cache"
	"FocusDesk/internal/model"
	"FocusDesk/internal/queue"
	"FocusDesk/pkg/logger"
	"FocusDesk/storage/mq"
	"FocusDesk/storage/redis"
)

func main() {
	logger.Init()
	defer logger.Sync()

	cfg := &config.Cfg

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := mq.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize RabbitMQ", zap.Error(err))
	}
	defer func() {
		if err := mq.Close(context.Background()); err != nil {
			logger.Logger.Error("Failed to close RabbitMQ", zap.Error(err))
		}
	}()

	// Redis 不可用时退化为不去重
	var dedupe queue.Deduper
	if err := redis.Init(); err != nil {
		logger.Logger.Warn("Redis unavailable, duplicate events will not be filtered", zap.Error(err))
	} else {
		defer redis.Close(context.Background())
		dedupe = cache.NewDeduper(redis.Client(), cfg.RedisPrefix)
	}

	sessions := logger.Named("sessions")
	handler := queue.NewTimerCompletedHandler(dedupe, func(_ context.Context, e model.TimerCompletedEvent) error {
		sessions.Info("Focus session finished",
			zap.String("event_id", e.EventID),
			zap.Int("minutes", e.DurationSeconds/60),
			zap.Time("completed_at", e.CompletedAt),
		)
		return nil
	}, logger.Named("worker"))

	logger.Logger.Info("Worker service starting",
		zap.String("service", cfg.ServiceName+"-worker"),
		zap.String("queue", cfg.NotifyQueue),
		zap.String("environment", cfg.Environment),
	)

	queue.StartAllConsumers(ctx, cfg.NotifyQueue, handler, logger.Logger)

	logger.Logger.Info("Worker service shutting down gracefully")
}
