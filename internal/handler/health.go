package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FocusDesk/pkg/response"
)

// Healthz GET /healthz
func Healthz(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, map[string]string{"status": "ok"})
}
