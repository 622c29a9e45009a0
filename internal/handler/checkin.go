package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FocusDesk/internal/model"
	"FocusDesk/pkg/response"
)

type toggleCheckInResponse struct {
	Date    model.Date           `json:"date"`
	Checked bool                 `json:"checked"`
	Summary model.CheckinSummary `json:"summary"`
}

// GetCheckInSummary 打卡统计：总天数、本月天数、连续天数、今天是否已打卡
// GET /v1/check-ins/summary?year=&month=
func (h *DeskHandler) GetCheckInSummary(ctx context.Context, c *app.RequestContext) {
	year, month, err := h.yearMonth(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	summary, err := h.desk.CheckInSummary(year, month)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, summary)
}

// GetCalendar 月历
// GET /v1/check-ins/calendar?year=&month=
func (h *DeskHandler) GetCalendar(ctx context.Context, c *app.RequestContext) {
	year, month, err := h.yearMonth(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	cal, err := h.desk.Calendar(year, month)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, cal)
}

// ToggleCheckIn 切换某天的打卡状态
// POST /v1/check-ins/:date/toggle
func (h *DeskHandler) ToggleCheckIn(ctx context.Context, c *app.RequestContext) {
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	checked := h.desk.ToggleCheckIn(ctx, date)
	summary, err := h.desk.CheckInSummary(date.Year, date.Month)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toggleCheckInResponse{
		Date:    date,
		Checked: checked,
		Summary: summary,
	})
}
