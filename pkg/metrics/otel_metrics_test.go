package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *OTelMetrics
	assert.NotPanics(t, func() {
		m.RecordCheckInToggle(context.Background(), true)
		m.RecordTimerTick(context.Background(), 3)
		m.RecordTimerCompleted(context.Background(), 25)
		m.RecordPersistenceFailure(context.Background(), "save", "tasks_v1")
	})
}

func TestRecordedCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		metrics = nil
		_ = provider.Shutdown(context.Background())
	})

	require.NoError(t, InitMetricsWithMeter(provider.Meter("test")))

	ctx := context.Background()
	GetMetrics().RecordCheckInToggle(ctx, true)
	GetMetrics().RecordTimerTick(ctx, 3)
	GetMetrics().RecordTimerTick(ctx, 2)
	GetMetrics().RecordTimerCompleted(ctx, 5)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range data.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(1), sums["desk_checkin_toggles_total"])
	assert.Equal(t, int64(2), sums["desk_timer_ticks_total"])
	assert.Equal(t, int64(5), sums["desk_timer_elapsed_seconds_total"])
	assert.Equal(t, int64(1), sums["desk_timer_completions_total"])
}
