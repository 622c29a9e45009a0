package handler

import (
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"FocusDesk/internal/service"
	"FocusDesk/pkg/errors"
)

// DeskHandler 把 HTTP 请求转发给 service.Desk，本身不含业务逻辑
type DeskHandler struct {
	desk *service.Desk
}

func NewDeskHandler(desk *service.Desk) *DeskHandler {
	return &DeskHandler{desk: desk}
}

// yearMonth 解析 ?year=&month=，缺省时取今天所在月份
func (h *DeskHandler) yearMonth(c *app.RequestContext) (int, time.Month, error) {
	today := h.desk.Today()
	year, month := today.Year, int(today.Month)

	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.InvalidRequest
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.InvalidMonth
		}
		month = n
	}
	return year, time.Month(month), nil
}

func parseTaskID(c *app.RequestContext) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.InvalidRequest
	}
	return id, nil
}
