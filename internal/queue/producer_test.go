package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FocusDesk/internal/model"
	"FocusDesk/internal/notify"
)

type recordingPublisher struct {
	exchange   string
	routingKey string
	bodies     [][]byte
	err        error
}

func (p *recordingPublisher) Publish(_ context.Context, exchange, routingKey string, body any) error {
	if p.err != nil {
		return p.err
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	p.exchange, p.routingKey = exchange, routingKey
	p.bodies = append(p.bodies, raw)
	return nil
}

func TestPublishTimerCompleted(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, "desk.events", "timer.completed", "focusdesk", nil)

	at := time.Date(2025, 3, 1, 10, 25, 0, 0, time.UTC)
	require.NoError(t, p.PublishTimerCompleted(context.Background(), model.TimerCompletedEvent{
		EventID:         "evt-1",
		DurationSeconds: 1500,
		CompletedAt:     at,
	}))

	assert.Equal(t, "desk.events", pub.exchange)
	assert.Equal(t, "timer.completed", pub.routingKey)
	require.Len(t, pub.bodies, 1)

	var msg incomingMessage
	require.NoError(t, json.Unmarshal(pub.bodies[0], &msg))
	assert.Equal(t, "evt-1", msg.MessageID)
	assert.Equal(t, model.EventTypeTimerCompleted, msg.EventType)

	var event model.TimerCompletedEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, 1500, event.DurationSeconds)
	assert.True(t, at.Equal(event.CompletedAt))
}

func TestPublishAssignsEventID(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, "desk.events", "timer.completed", "focusdesk", nil)

	require.NoError(t, p.PublishTimerCompleted(context.Background(), model.TimerCompletedEvent{DurationSeconds: 5}))

	var msg incomingMessage
	require.NoError(t, json.Unmarshal(pub.bodies[0], &msg))
	assert.NotEmpty(t, msg.MessageID)
}

func TestPublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := NewProducer(&recordingPublisher{err: boom}, "desk.events", "timer.completed", "focusdesk", nil)

	err := p.PublishTimerCompleted(context.Background(), model.TimerCompletedEvent{})
	assert.ErrorIs(t, err, boom)
}

func TestProducerServesAsNotifier(t *testing.T) {
	pub := &recordingPublisher{}
	var n notify.Notifier = notify.Multi{
		NewProducer(pub, "desk.events", "timer.completed", "focusdesk", nil),
	}

	require.NoError(t, n.TimerCompleted(context.Background(), model.TimerCompletedEvent{EventID: "evt-2", DurationSeconds: 60}))
	require.Len(t, pub.bodies, 1)

	var msg incomingMessage
	require.NoError(t, json.Unmarshal(pub.bodies[0], &msg))
	assert.Equal(t, "evt-2", msg.MessageID)
}
