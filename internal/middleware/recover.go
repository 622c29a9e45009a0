package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"FocusDesk/pkg/errors"
	"FocusDesk/pkg/response"
)

// RecoverConfig recover 中间件配置
type RecoverConfig struct {
	Logger *zap.Logger
	// 生产环境不返回 panic 详情
	IsProduction bool
	// 是否记录堆栈
	EnableStackTrace bool
}

// RecoverMiddleware 捕获 panic，记录日志并返回 500
func RecoverMiddleware(cfg RecoverConfig) app.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err, cfg)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}, cfg RecoverConfig) {
	fields := []zap.Field{
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", string(c.GetHeader("X-Request-Id"))),
	}

	var stack []byte
	if cfg.EnableStackTrace {
		stack = debug.Stack()
		fields = append(fields, zap.ByteString("stack", stack))
	}
	cfg.Logger.Error("[PANIC RECOVERED]", fields...)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(fmt.Errorf("panic: %v", err))
		span.SetStatus(codes.Error, "panic recovered")
	}

	def := errors.Definition{Code: "INTERNAL_SERVER_ERROR", Message: "Internal server error"}
	if cfg.IsProduction {
		response.Error(ctx, c, def)
		c.Abort()
		return
	}

	details := map[string]interface{}{"panic": fmt.Sprintf("%v", err)}
	if len(stack) > 0 {
		details["stack"] = string(stack)
	}
	response.ErrorWithDetails(ctx, c, def, details)
	c.Abort()
}
