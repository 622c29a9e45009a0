package model

import "time"

// TimerState 倒计时状态
type TimerState string

const (
	TimerStateIdle      TimerState = "idle"
	TimerStateRunning   TimerState = "running"
	TimerStateCompleted TimerState = "completed"
)

// TimerSnapshot 倒计时的只读视图
type TimerSnapshot struct {
	DurationSeconds  int        `json:"duration_seconds"`
	RemainingSeconds int        `json:"remaining_seconds"`
	Running          bool       `json:"running"`
	State            TimerState `json:"state"`
	Display          string     `json:"display"`
	Percent          int        `json:"percent"`
}

// TimerRun 描述当前这一段运行。每次从停止进入运行 Generation 加一，
// 驱动据此发现两次采样之间发生过的暂停和重新开始。
type TimerRun struct {
	Running    bool
	Generation uint64
	StartedAt  time.Time
}
