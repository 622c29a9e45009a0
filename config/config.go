package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"127.0.0.1"`

	// 允许跨域访问的前端来源，逗号分隔，为空时放行所有来源
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"focusdesk"`

	// 存储配置：memory, sqlite, postgres, redis
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"focusdesk.db"`

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"focusdesk"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"5"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"20"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"desk"`

	// RabbitMQ 配置，仅在 NOTIFY_QUEUE_ENABLED 时连接
	NotifyQueueEnabled bool   `env:"NOTIFY_QUEUE_ENABLED" envDefault:"false"`
	RabbitMQAddr       string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort       string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername   string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword   string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost      string `env:"RABBITMQ_VHOST" envDefault:"/"`
	NotifyExchange     string `env:"NOTIFY_EXCHANGE" envDefault:"desk.events"`
	NotifyRoutingKey   string `env:"NOTIFY_ROUTING_KEY" envDefault:"timer.completed"`
	NotifyQueue        string `env:"NOTIFY_QUEUE" envDefault:"desk.timer_completed"` // worker 消费的队列

	// 番茄钟配置（秒）
	TimerDefaultSeconds int           `env:"TIMER_DEFAULT_SECONDS" envDefault:"1500"`
	TimerMaxSeconds     int           `env:"TIMER_MAX_SECONDS" envDefault:"10800"`
	TickInterval        time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`

	// 日历配置：monday 或 sunday
	WeekStart string `env:"WEEK_START" envDefault:"monday"`
	// 用于判断“今天”的时区，留空使用本地时区
	Timezone string `env:"TIMEZONE" envDefault:""`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪与指标
	OTelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"0.1"`
	ServiceVersion  string  `env:"SERVICE_VERSION" envDefault:"1.0.0"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}
	Cfg = *cfg
}

// Load 从环境变量解析配置并校验
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "memory", "sqlite", "postgres", "redis":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.TimerMaxSeconds < 1 {
		return fmt.Errorf("TIMER_MAX_SECONDS must be positive, got %d", c.TimerMaxSeconds)
	}
	if c.TimerDefaultSeconds < 1 || c.TimerDefaultSeconds > c.TimerMaxSeconds {
		return fmt.Errorf("TIMER_DEFAULT_SECONDS must be within 1..%d, got %d", c.TimerMaxSeconds, c.TimerDefaultSeconds)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}

	switch strings.ToLower(c.WeekStart) {
	case "monday", "sunday":
	default:
		return fmt.Errorf("WEEK_START must be monday or sunday, got %q", c.WeekStart)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
		}
	}

	if c.NotifyQueueEnabled && c.NotifyExchange == "" {
		log.Printf("WARN: NOTIFY_EXCHANGE is empty, timer events go to the default exchange")
	}
	return nil
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

// WeekStartsSunday 报告日历是否以周日开头
func (c *Config) WeekStartsSunday() bool {
	return strings.EqualFold(c.WeekStart, "sunday")
}

// Location 返回判断日期所用的时区
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
