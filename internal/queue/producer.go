package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FocusDesk/internal/model"
)

// Publisher 由 storage/mq.Publisher 实现
type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body any) error
}

type Producer struct {
	publisher  Publisher
	exchange   string
	routingKey string
	source     string
	log        *zap.Logger
}

func NewProducer(publisher Publisher, exchange, routingKey, source string, log *zap.Logger) *Producer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Producer{
		publisher:  publisher,
		exchange:   exchange,
		routingKey: routingKey,
		source:     source,
		log:        log,
	}
}

// PublishTimerCompleted 发布倒计时完成事件，EventID 为空时补一个
func (p *Producer) PublishTimerCompleted(ctx context.Context, event model.TimerCompletedEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	msg := model.EventMessage{
		Payload:   event,
		MessageID: event.EventID,
		EventType: model.EventTypeTimerCompleted,
		Source:    p.source,
		Timestamp: time.Now(),
	}

	if err := p.publisher.Publish(ctx, p.exchange, p.routingKey, msg); err != nil {
		p.log.Error("Failed to publish timer completed event",
			zap.String("message_id", msg.MessageID),
			zap.String("exchange", p.exchange),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish timer completed event: %w", err)
	}

	p.log.Info("Published timer completed event",
		zap.String("message_id", msg.MessageID),
		zap.Int("duration_seconds", event.DurationSeconds),
	)
	return nil
}

// TimerCompleted 让 Producer 直接作为 notify.Notifier 挂到倒计时上
func (p *Producer) TimerCompleted(ctx context.Context, event model.TimerCompletedEvent) error {
	return p.PublishTimerCompleted(ctx, event)
}
