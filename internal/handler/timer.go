package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FocusDesk/pkg/response"
)

type configureTimerRequest struct {
	Seconds int `json:"seconds"`
}

// GetTimer 倒计时当前状态
// GET /v1/timer
func (h *DeskHandler) GetTimer(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, h.desk.Timer())
}

// ConfigureTimer 设置倒计时时长
// PUT /v1/timer/duration
func (h *DeskHandler) ConfigureTimer(ctx context.Context, c *app.RequestContext) {
	var req configureTimerRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	snap, err := h.desk.ConfigureTimer(ctx, req.Seconds)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, snap)
}

// StartTimer POST /v1/timer/start
func (h *DeskHandler) StartTimer(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, h.desk.StartTimer(ctx))
}

// PauseTimer POST /v1/timer/pause
func (h *DeskHandler) PauseTimer(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, h.desk.PauseTimer(ctx))
}

// ResetTimer POST /v1/timer/reset
func (h *DeskHandler) ResetTimer(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, h.desk.ResetTimer(ctx))
}
