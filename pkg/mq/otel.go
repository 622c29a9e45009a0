package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// HeaderCarrier 让 trace context 随消息头传递
type HeaderCarrier struct {
	Headers amqp.Table
}

func (c *HeaderCarrier) Get(key string) string {
	if v, ok := c.Headers[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (c *HeaderCarrier) Set(key, value string) {
	if c.Headers == nil {
		c.Headers = make(amqp.Table)
	}
	c.Headers[key] = value
}

func (c *HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c.Headers))
	for k := range c.Headers {
		keys = append(keys, k)
	}
	return keys
}

// StartPublish 开启 producer span 并把上下文注入 msg.Headers，调用方负责 End
func StartPublish(ctx context.Context, serviceName, exchange, routingKey string, msg *amqp.Publishing) (context.Context, trace.Span) {
	if serviceName == "" {
		serviceName = "focusdesk"
	}

	ctx, span := otel.Tracer(serviceName+".rabbitmq").Start(ctx, "rabbitmq.publish "+exchange,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystem("rabbitmq"),
			semconv.MessagingDestinationName(exchange),
			attribute.String("messaging.rabbitmq.destination.routing_key", routingKey),
		),
	)

	carrier := &HeaderCarrier{Headers: msg.Headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	msg.Headers = carrier.Headers

	return ctx, span
}

// StartConsume 从消息头提取上游上下文并开启 consumer span
func StartConsume(serviceName, queue string, d amqp.Delivery) (context.Context, trace.Span) {
	if serviceName == "" {
		serviceName = "focusdesk"
	}

	ctx := otel.GetTextMapPropagator().Extract(context.Background(), &HeaderCarrier{Headers: d.Headers})
	return otel.Tracer(serviceName+".rabbitmq").Start(ctx, "rabbitmq.consume "+queue,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystem("rabbitmq"),
			semconv.MessagingDestinationName(queue),
			attribute.String("messaging.rabbitmq.destination.routing_key", d.RoutingKey),
		),
	)
}

func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
