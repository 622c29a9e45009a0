package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 打卡相关指标
	CheckInTogglesTotal metric.Int64Counter

	// 番茄钟相关指标
	TimerCompletionsTotal metric.Int64Counter
	TimerTicksTotal       metric.Int64Counter
	TimerElapsedSeconds   metric.Int64Counter

	// 存储相关指标
	PersistenceFailuresTotal metric.Int64Counter
}

var (
	// 全局指标实例，未初始化时为 nil，所有 Record 方法均可安全调用
	metrics *OTelMetrics
)

// InitMetrics 使用全局 MeterProvider 初始化指标
func InitMetrics() error {
	return InitMetricsWithMeter(otel.Meter("focusdesk"))
}

// InitMetricsWithMeter 使用指定 meter 初始化指标
func InitMetricsWithMeter(meter metric.Meter) error {
	m := &OTelMetrics{}
	var err error

	m.CheckInTogglesTotal, err = meter.Int64Counter(
		"desk_checkin_toggles_total",
		metric.WithDescription("Total number of check-in toggles"),
		metric.WithUnit("{toggle}"),
	)
	if err != nil {
		return err
	}

	m.TimerCompletionsTotal, err = meter.Int64Counter(
		"desk_timer_completions_total",
		metric.WithDescription("Total number of countdowns that reached zero"),
		metric.WithUnit("{completion}"),
	)
	if err != nil {
		return err
	}

	m.TimerTicksTotal, err = meter.Int64Counter(
		"desk_timer_ticks_total",
		metric.WithDescription("Total number of ticks applied to a running countdown"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return err
	}

	m.TimerElapsedSeconds, err = meter.Int64Counter(
		"desk_timer_elapsed_seconds_total",
		metric.WithDescription("Seconds of countdown consumed by ticks"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	m.PersistenceFailuresTotal, err = meter.Int64Counter(
		"desk_persistence_failures_total",
		metric.WithDescription("Total number of failed store operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	metrics = m
	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordCheckInToggle 记录一次打卡切换，checked 为切换后的状态
func (m *OTelMetrics) RecordCheckInToggle(ctx context.Context, checked bool) {
	if m == nil {
		return
	}
	m.CheckInTogglesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("checked", checked),
	))
}

// RecordTimerTick 记录一次有效 tick
func (m *OTelMetrics) RecordTimerTick(ctx context.Context, appliedSeconds int) {
	if m == nil {
		return
	}
	m.TimerTicksTotal.Add(ctx, 1)
	m.TimerElapsedSeconds.Add(ctx, int64(appliedSeconds))
}

// RecordTimerCompleted 记录倒计时完成
func (m *OTelMetrics) RecordTimerCompleted(ctx context.Context, durationSeconds int) {
	if m == nil {
		return
	}
	m.TimerCompletionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("duration_seconds", durationSeconds),
	))
}

// RecordPersistenceFailure 记录存储失败
func (m *OTelMetrics) RecordPersistenceFailure(ctx context.Context, op, key string) {
	if m == nil {
		return
	}
	m.PersistenceFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("key", key),
	))
}
