package mq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return recorder
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (string, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value.Emit(), true
		}
	}
	return "", false
}

func TestConsumeSpanContinuesPublishTrace(t *testing.T) {
	recorder := installRecorder(t)

	msg := amqp.Publishing{}
	_, pubSpan := StartPublish(context.Background(), "focusdesk", "desk.events", "timer.completed", &msg)
	EndSpan(pubSpan, nil)
	require.NotEmpty(t, msg.Headers["traceparent"])

	_, conSpan := StartConsume("focusdesk", "desk.timer_completed", amqp.Delivery{
		Headers:    msg.Headers,
		RoutingKey: "timer.completed",
	})
	EndSpan(conSpan, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	publish, consume := spans[0], spans[1]

	assert.Equal(t, publish.SpanContext().TraceID(), consume.SpanContext().TraceID())
	assert.Equal(t, publish.SpanContext().SpanID(), consume.Parent().SpanID())

	dest, ok := attrValue(publish.Attributes(), "messaging.destination.name")
	require.True(t, ok)
	assert.Equal(t, "desk.events", dest)

	dest, ok = attrValue(consume.Attributes(), "messaging.destination.name")
	require.True(t, ok)
	assert.Equal(t, "desk.timer_completed", dest)
}

func TestHeaderCarrierSetOnNilTable(t *testing.T) {
	c := &HeaderCarrier{}
	c.Set("traceparent", "00-abc-def-01")
	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
	assert.Empty(t, c.Get("missing"))
}
