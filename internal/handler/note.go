package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FocusDesk/pkg/response"
)

type setNoteRequest struct {
	Text string `json:"text"`
}

// GetNote GET /v1/note
func (h *DeskHandler) GetNote(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, h.desk.Note())
}

// SetNote PUT /v1/note
func (h *DeskHandler) SetNote(ctx context.Context, c *app.RequestContext) {
	var req setNoteRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	response.Success(ctx, c, h.desk.SetNote(ctx, req.Text))
}
