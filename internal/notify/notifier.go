// Package notify delivers timer completion events to whatever is listening:
// the log or several notifiers at once. queue.Producer is the message-queue one.
package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"FocusDesk/internal/model"
)

type Notifier interface {
	TimerCompleted(ctx context.Context, event model.TimerCompletedEvent) error
}

// NotifierFunc 便于测试时直接传函数
type NotifierFunc func(ctx context.Context, event model.TimerCompletedEvent) error

func (f NotifierFunc) TimerCompleted(ctx context.Context, event model.TimerCompletedEvent) error {
	return f(ctx, event)
}

// LogNotifier 只写日志
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) TimerCompleted(_ context.Context, event model.TimerCompletedEvent) error {
	n.log.Info("Countdown completed",
		zap.String("event_id", event.EventID),
		zap.Int("duration_seconds", event.DurationSeconds),
		zap.Time("completed_at", event.CompletedAt),
	)
	return nil
}

// Multi 依次通知所有下游，某个失败不影响其余，错误合并返回
type Multi []Notifier

func (m Multi) TimerCompleted(ctx context.Context, event model.TimerCompletedEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.TimerCompleted(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
