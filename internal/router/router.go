package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"FocusDesk/internal/handler"
)

// Register 注册全部路由；middlewares 按顺序作用于所有请求
func Register(h *server.Hertz, desk *handler.DeskHandler, middlewares ...app.HandlerFunc) {
	h.Use(middlewares...)

	h.GET("/healthz", handler.Healthz)

	v1 := h.Group("/v1")

	// 打卡日历
	checkIns := v1.Group("/check-ins")
	{
		checkIns.GET("/summary", desk.GetCheckInSummary)
		checkIns.GET("/calendar", desk.GetCalendar)
		checkIns.POST("/:date/toggle", desk.ToggleCheckIn)
	}

	// 番茄钟
	timer := v1.Group("/timer")
	{
		timer.GET("", desk.GetTimer)
		timer.PUT("/duration", desk.ConfigureTimer)
		timer.POST("/start", desk.StartTimer)
		timer.POST("/pause", desk.PauseTimer)
		timer.POST("/reset", desk.ResetTimer)
	}

	// 任务清单
	tasks := v1.Group("/tasks")
	{
		tasks.GET("", desk.ListTasks)
		tasks.POST("", desk.AddTask)
		tasks.DELETE("/done", desk.ClearDoneTasks)
		tasks.POST("/:id/toggle", desk.ToggleTask)
		tasks.DELETE("/:id", desk.RemoveTask)
	}

	// 复盘笔记
	v1.GET("/note", desk.GetNote)
	v1.PUT("/note", desk.SetNote)
}
