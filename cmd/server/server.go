package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"

	"FocusDesk/config"
	"FocusDesk/internal/handler"
	"FocusDesk/internal/notify"
	"FocusDesk/internal/queue"
	"FocusDesk/internal/router"
	"FocusDesk/internal/schedule"
	"FocusDesk/internal/service"
	"FocusDesk/pkg/clock"
	"FocusDesk/pkg/logger"
	"FocusDesk/pkg/metrics"
	deskotel "FocusDesk/pkg/otel"
	"FocusDesk/pkg/snowflake"
	"FocusDesk/storage"
	"FocusDesk/storage/mq"
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

	// OpenTelemetry 需在存储之前初始化，gorm/redis 的追踪依赖全局 provider
	if cfg.OTelEnabled {
		shutdown, err := deskotel.InitOpenTelemetry(ctx, deskotel.Config{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: cfg.ServiceVersion,
			Environment:    cfg.Environment,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SampleRatio:    cfg.OTelSampleRatio,
		})
		if err != nil {
			logger.Logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
			}
		}()
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize desk metrics", zap.Error(err))
	}

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(cfg.SnowflakeMachineID, cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	store, err := service.OpenStore(cfg, logger.Named("persist"))
	if err != nil {
		logger.Logger.Fatal("Failed to open persistence store", zap.Error(err))
	}

	notifiers := notify.Multi{notify.NewLogNotifier(logger.Named("notify"))}
	if cfg.NotifyQueueEnabled {
		producer := queue.NewProducer(mq.NewPublisher(), cfg.NotifyExchange, cfg.NotifyRoutingKey, cfg.ServiceName, logger.Named("queue"))
		notifiers = append(notifiers, producer)
	}

	sysClock := clock.System{Location: cfg.Location()}
	desk := service.NewDesk(ctx, service.DeskOptions{
		Store:           store,
		Clock:           sysClock,
		Notifier:        notifiers,
		Logger:          logger.Logger,
		SundayFirst:     cfg.WeekStartsSunday(),
		TimerDefault:    cfg.TimerDefaultSeconds,
		TimerMaxSeconds: cfg.TimerMaxSeconds,
		NextTaskID:      snowflake.NextID,
	})

	driver := schedule.NewTimerDriver(desk, sysClock, cfg.TickInterval, logger.Named("timer_driver"))
	go func() {
		_ = driver.Run(ctx)
	}()

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	opts, middlewares := httpStack(cfg, addr)

	h := server.Default(opts...)
	router.Register(h, handler.NewDeskHandler(desk), middlewares...)

	logger.Logger.Info("Server starting",
		zap.String("service", cfg.ServiceName),
		zap.String("addr", addr),
		zap.String("storage", cfg.StorageDriver),
		zap.String("environment", cfg.Environment),
	)

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
