package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FocusDesk/pkg/response"
)

type addTaskRequest struct {
	Text string `json:"text"`
}

// ListTasks 任务列表及进度
// GET /v1/tasks
func (h *DeskHandler) ListTasks(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, h.desk.Tasks())
}

// AddTask POST /v1/tasks
func (h *DeskHandler) AddTask(ctx context.Context, c *app.RequestContext) {
	var req addTaskRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	task, err := h.desk.AddTask(ctx, req.Text)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, task)
}

// ToggleTask POST /v1/tasks/:id/toggle
func (h *DeskHandler) ToggleTask(ctx context.Context, c *app.RequestContext) {
	id, err := parseTaskID(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	task, err := h.desk.ToggleTask(ctx, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, task)
}

// RemoveTask DELETE /v1/tasks/:id
func (h *DeskHandler) RemoveTask(ctx context.Context, c *app.RequestContext) {
	id, err := parseTaskID(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	if err := h.desk.RemoveTask(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// ClearDoneTasks 清除已完成任务
// DELETE /v1/tasks/done
func (h *DeskHandler) ClearDoneTasks(ctx context.Context, c *app.RequestContext) {
	removed, board := h.desk.ClearDoneTasks(ctx)
	response.SuccessWithMeta(ctx, c, board, map[string]interface{}{"removed": removed})
}
