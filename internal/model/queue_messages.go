package model

import "time"

// TimerCompletedEvent 倒计时归零时发出的通知
type TimerCompletedEvent struct {
	EventID         string    `json:"event_id"` // 事件唯一ID，用于消费端幂等
	DurationSeconds int       `json:"duration_seconds"`
	CompletedAt     time.Time `json:"completed_at"`
}

// EventMessage 投递到消息队列的事件封装
type EventMessage struct {
	Payload   any       `json:"payload"`
	MessageID string    `json:"message_id"`
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

const EventTypeTimerCompleted = "timer.completed"
