package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"FocusDesk/internal/model"
	"FocusDesk/storage/mq"
)

const processedTTL = 48 * time.Hour

// Deduper 保证同一条消息只处理一次，由 cache.Deduper 实现
type Deduper interface {
	TryMark(ctx context.Context, messageID string, ttl time.Duration) (bool, error)
	MarkDone(ctx context.Context, messageID string, ttl time.Duration) error
	Unmark(ctx context.Context, messageID string) error
}

// TimerCompletedSink 接收去重后的完成事件
type TimerCompletedSink func(ctx context.Context, event model.TimerCompletedEvent) error

type incomingMessage struct {
	Payload   json.RawMessage `json:"payload"`
	MessageID string          `json:"message_id"`
	EventType string          `json:"event_type"`
}

// TimerCompletedHandler 处理 timer.completed 消息
type TimerCompletedHandler struct {
	dedupe Deduper
	sink   TimerCompletedSink
	log    *zap.Logger
}

func NewTimerCompletedHandler(dedupe Deduper, sink TimerCompletedSink, log *zap.Logger) *TimerCompletedHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TimerCompletedHandler{dedupe: dedupe, sink: sink, log: log}
}

// Handle 返回 error 时消息会被重新入队；无法解析的消息直接丢弃
func (h *TimerCompletedHandler) Handle(ctx context.Context, body []byte) error {
	var msg incomingMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.log.Warn("Dropping malformed event message", zap.Error(err))
		return nil
	}
	if msg.EventType != model.EventTypeTimerCompleted {
		h.log.Debug("Ignoring event", zap.String("event_type", msg.EventType))
		return nil
	}

	var event model.TimerCompletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.log.Warn("Dropping malformed timer completed payload",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		return nil
	}

	if h.dedupe != nil && msg.MessageID != "" {
		first, err := h.dedupe.TryMark(ctx, msg.MessageID, processedTTL)
		if err != nil {
			// 去重失败时继续处理，宁可重复也不丢
			h.log.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !first {
			h.log.Info("Message already processed, skipping", zap.String("message_id", msg.MessageID))
			return nil
		}
	}

	if err := h.sink(ctx, event); err != nil {
		if h.dedupe != nil && msg.MessageID != "" {
			_ = h.dedupe.Unmark(ctx, msg.MessageID)
		}
		return fmt.Errorf("failed to handle timer completed event: %w", err)
	}

	if h.dedupe != nil && msg.MessageID != "" {
		if err := h.dedupe.MarkDone(ctx, msg.MessageID, processedTTL); err != nil {
			h.log.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// StartAllConsumers 启动所有消费者并阻塞到全部退出
func StartAllConsumers(ctx context.Context, queueName string, handler *TimerCompletedHandler, log *zap.Logger) {
	var wg sync.WaitGroup

	consumers := []struct {
		name string
		opts mq.ConsumeOptions
	}{
		{"timer_completed", mq.ConsumeOptions{
			Queue:         queueName,
			ConsumerTag:   "timer_completed_consumer",
			PrefetchCount: 10,
			Handler:       handler.Handle,
		}},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			log.Info("Starting consumer", zap.String("consumer_name", c.name))
			if err := mq.Consume(ctx, c.opts); err != nil {
				log.Error("Consumer exited with error",
					zap.String("consumer_name", c.name),
					zap.Error(err),
				)
			}
		}()
	}

	wg.Wait()
}
