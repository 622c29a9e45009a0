package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"FocusDesk/config"
	dbotel "FocusDesk/pkg/database"
	"FocusDesk/pkg/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbErr  error
)

// Init 按 STORAGE_DRIVER 打开 sqlite 或 postgres，并完成迁移
func Init() error {
	dbOnce.Do(func() {
		cfg := &config.Cfg

		var gormDB *gorm.DB
		gormDB, dbErr = Open(dialector(cfg))
		if dbErr != nil {
			logger.Logger.Error("Failed to open database",
				zap.String("driver", cfg.StorageDriver),
				zap.Error(dbErr),
			)
			return
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			dbErr = err
			logger.Logger.Error("Failed to get sql.DB from gorm", zap.Error(err))
			return
		}

		configureConnectionPool(sqlDB, cfg)

		if err := sqlDB.Ping(); err != nil {
			dbErr = err
			logger.Logger.Error("Failed to ping database", zap.Error(err))
			return
		}

		if cfg.OTelEnabled {
			if err := gormDB.Use(dbotel.NewTracingPlugin(cfg.ServiceName, gormDB.Dialector.Name())); err != nil {
				logger.Logger.Warn("Failed to register gorm tracing plugin", zap.Error(err))
			}
		}

		if err := Migrate(gormDB); err != nil {
			dbErr = fmt.Errorf("failed to run database migration: %w", err)
			return
		}

		db = gormDB
		logger.Logger.Info("Database initialized successfully", zap.String("driver", cfg.StorageDriver))
	})

	return dbErr
}

// Open 使用统一的 gorm 配置打开数据库，测试中也通过它打开临时 sqlite
func Open(d gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(d, &gorm.Config{
		Logger:                                   newLogger(),
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
	})
}

func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.StorageDriver == "postgres" {
		return postgres.Open(cfg.GetDSN())
	}
	return sqlite.Open(cfg.SQLitePath)
}

func DB() *gorm.DB {
	return db
}

func Close(ctx context.Context) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func configureConnectionPool(sqlDB *sql.DB, cfg *config.Config) {
	// sqlite 单写者，多连接只会带来 database is locked
	if cfg.StorageDriver != "postgres" {
		sqlDB.SetMaxOpenConns(1)
		return
	}

	sqlDB.SetMaxIdleConns(cfg.PostgreSQLMaxIdle)
	sqlDB.SetMaxOpenConns(cfg.PostgreSQLMaxOpen)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
}

func newLogger() gormlogger.Interface {
	level := gormlogger.Warn
	switch config.Cfg.LoggerLevel {
	case "DEBUG":
		level = gormlogger.Info
	case "ERROR":
		level = gormlogger.Error
	}

	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.Logger.Sugar().Infof(format, args...)
}
