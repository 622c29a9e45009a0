package main

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"FocusDesk/config"
	"FocusDesk/internal/middleware"
	"FocusDesk/pkg/logger"
)

// httpStack 组装 hertz 选项和全局中间件。
// 追踪中间件放在最前，recover 才能把 panic 记到 span 上
func httpStack(cfg *config.Config, addr string) ([]hertzconfig.Option, []app.HandlerFunc) {
	opts := []hertzconfig.Option{server.WithHostPorts(addr)}

	var middlewares []app.HandlerFunc
	if cfg.OTelEnabled {
		tracerOpt, tracingMiddleware := middleware.NewServerTracerConfig()
		opts = append(opts, tracerOpt)
		middlewares = append(middlewares, tracingMiddleware)
	}

	middlewares = append(middlewares,
		middleware.RecoverMiddleware(middleware.RecoverConfig{
			Logger:           logger.Named("http"),
			IsProduction:     cfg.IsProduction(),
			EnableStackTrace: !cfg.IsProduction(),
		}),
		middleware.CORSMiddleware(cfg.CORSAllowOrigins),
	)

	if cfg.OTelEnabled {
		httpMetrics, err := middleware.NewHTTPMetrics(otel.Meter(cfg.ServiceName))
		if err != nil {
			logger.Logger.Warn("Failed to initialize HTTP metrics", zap.Error(err))
		}
		middlewares = append(middlewares, middleware.MetricsMiddleware(httpMetrics))
	}

	return opts, middlewares
}
