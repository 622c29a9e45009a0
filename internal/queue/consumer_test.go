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
)

type memoryDeduper struct {
	state map[string]string
	err   error
}

func newMemoryDeduper() *memoryDeduper {
	return &memoryDeduper{state: make(map[string]string)}
}

func (d *memoryDeduper) TryMark(_ context.Context, id string, _ time.Duration) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if _, ok := d.state[id]; ok {
		return false, nil
	}
	d.state[id] = "processing"
	return true, nil
}

func (d *memoryDeduper) MarkDone(_ context.Context, id string, _ time.Duration) error {
	d.state[id] = "completed"
	return nil
}

func (d *memoryDeduper) Unmark(_ context.Context, id string) error {
	delete(d.state, id)
	return nil
}

func eventBody(t *testing.T, id string, eventType string) []byte {
	t.Helper()
	raw, err := json.Marshal(model.EventMessage{
		Payload:   model.TimerCompletedEvent{EventID: id, DurationSeconds: 1500},
		MessageID: id,
		EventType: eventType,
		Source:    "focusdesk",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	return raw
}

func TestHandlerDeduplicates(t *testing.T) {
	ctx := context.Background()
	dedupe := newMemoryDeduper()

	var got []model.TimerCompletedEvent
	h := NewTimerCompletedHandler(dedupe, func(_ context.Context, e model.TimerCompletedEvent) error {
		got = append(got, e)
		return nil
	}, nil)

	body := eventBody(t, "evt-1", model.EventTypeTimerCompleted)
	require.NoError(t, h.Handle(ctx, body))
	require.NoError(t, h.Handle(ctx, body))

	require.Len(t, got, 1)
	assert.Equal(t, 1500, got[0].DurationSeconds)
	assert.Equal(t, "completed", dedupe.state["evt-1"])
}

func TestHandlerSinkFailureAllowsRetry(t *testing.T) {
	ctx := context.Background()
	dedupe := newMemoryDeduper()

	calls := 0
	h := NewTimerCompletedHandler(dedupe, func(context.Context, model.TimerCompletedEvent) error {
		calls++
		if calls == 1 {
			return errors.New("downstream unavailable")
		}
		return nil
	}, nil)

	body := eventBody(t, "evt-2", model.EventTypeTimerCompleted)
	assert.Error(t, h.Handle(ctx, body))
	_, marked := dedupe.state["evt-2"]
	assert.False(t, marked)

	require.NoError(t, h.Handle(ctx, body))
	assert.Equal(t, 2, calls)
}

func TestHandlerDedupeFailureStillProcesses(t *testing.T) {
	dedupe := newMemoryDeduper()
	dedupe.err = errors.New("redis down")

	calls := 0
	h := NewTimerCompletedHandler(dedupe, func(context.Context, model.TimerCompletedEvent) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, h.Handle(context.Background(), eventBody(t, "evt-3", model.EventTypeTimerCompleted)))
	assert.Equal(t, 1, calls)
}

func TestHandlerDropsUnknownAndMalformed(t *testing.T) {
	calls := 0
	h := NewTimerCompletedHandler(nil, func(context.Context, model.TimerCompletedEvent) error {
		calls++
		return nil
	}, nil)

	ctx := context.Background()
	assert.NoError(t, h.Handle(ctx, []byte(`{not json`)))
	assert.NoError(t, h.Handle(ctx, eventBody(t, "evt-4", "task.added")))
	assert.NoError(t, h.Handle(ctx, []byte(`{"event_type":"timer.completed","payload":"oops"}`)))
	assert.Zero(t, calls)
}
