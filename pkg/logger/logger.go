package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"FocusDesk/config"
)

var (
	Logger   = zap.NewNop()
	logClose io.Closer
)

// Init 按全局配置构建 logger，同时接管 hertz 的 hlog 输出
func Init() {
	cfg := &config.Cfg

	l, closer, err := New(cfg)
	if err != nil {
		// 日志文件打不开时退回 stderr，不因为日志阻止启动
		fmt.Fprintf(os.Stderr, "logger: %v, falling back to stderr\n", err)
		fallback := *cfg
		fallback.LoggerOutputPath = "stderr"
		l, closer, _ = New(&fallback)
	}

	Logger, logClose = l, closer
	Logger.Info("Logger initialized",
		zap.String("level", strings.ToUpper(cfg.LoggerLevel)),
		zap.String("format", cfg.LoggerFormat),
		zap.String("output", cfg.LoggerOutputPath),
	)
}

// New 构建 logger 并注册为 hertz 全局 logger；返回的 Closer 可能为 nil
func New(cfg *config.Config) (*zap.Logger, io.Closer, error) {
	ws, closer, err := buildWriteSyncer(cfg.LoggerOutputPath)
	if err != nil {
		return nil, nil, err
	}

	level := zap.NewAtomicLevelAt(parseZapLevel(cfg.LoggerLevel))

	hzLogger := hertzzap.NewLogger(
		hertzzap.WithCoreEnc(buildEncoder(cfg)),
		hertzzap.WithCoreWs(ws),
		hertzzap.WithCoreLevel(level),
		hertzzap.WithZapOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
			zap.Fields(
				zap.String("service", cfg.ServiceName),
				zap.String("environment", cfg.Environment),
			),
		),
	)
	hlog.SetLogger(hzLogger)
	hlog.SetLevel(toHlogLevel(level.Level()))

	return hzLogger.Logger(), closer, nil
}

// Named 返回带组件名的子 logger
func Named(component string) *zap.Logger {
	return Logger.With(zap.String("component", component))
}

func Sync() {
	_ = Logger.Sync()

	if logClose != nil {
		_ = logClose.Close()
		logClose = nil
	}
}

func buildEncoder(cfg *config.Config) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(cfg.LoggerFormat, "json") {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	// 文本格式只在写终端时上色
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if isConsole(cfg.LoggerOutputPath) {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func isConsole(path string) bool {
	return path == "" || strings.EqualFold(path, "stdout") || strings.EqualFold(path, "stderr")
}

func buildWriteSyncer(path string) (zapcore.WriteSyncer, io.Closer, error) {
	switch {
	case path == "", strings.EqualFold(path, "stdout"):
		return zapcore.AddSync(os.Stdout), nil, nil
	case strings.EqualFold(path, "stderr"):
		return zapcore.AddSync(os.Stderr), nil, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return zapcore.AddSync(file), file, nil
}

func parseZapLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func toHlogLevel(level zapcore.Level) hlog.Level {
	switch level {
	case zapcore.DebugLevel:
		return hlog.LevelDebug
	case zapcore.InfoLevel:
		return hlog.LevelInfo
	case zapcore.WarnLevel:
		return hlog.LevelWarn
	case zapcore.ErrorLevel:
		return hlog.LevelError
	case zapcore.FatalLevel:
		return hlog.LevelFatal
	default:
		return hlog.LevelInfo
	}
}
