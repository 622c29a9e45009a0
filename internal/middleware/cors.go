package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/cloudwego/hertz/pkg/app"
)

// CORSMiddleware allowOrigins 为空时回显请求来源
func CORSMiddleware(allowOrigins []string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		origin := string(c.Request.Header.Get("Origin"))

		switch {
		case origin == "":
			c.Header("Access-Control-Allow-Origin", "*")
		case len(allowOrigins) == 0 || slices.Contains(allowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		default:
			// 不在白名单内，不写 CORS 头，由浏览器拦截
			c.Next(ctx)
			return
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Requested-With, X-Request-Id")
		c.Header("Access-Control-Max-Age", "86400")

		// OPTIONS 预检请求
		if string(c.Method()) == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next(ctx)
	}
}
