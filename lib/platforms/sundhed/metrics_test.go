package sundhed

import (
	"context"
	"errors"
	"findbehandler/internal/components/telemetry"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type brokenMeter struct {
	noop.Meter
}

func (brokenMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("counter unavailable")
}

func (brokenMeter) Float64Histogram(string, ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	return nil, errors.New("histogram unavailable")
}

func TestRequestMetricsReportCreationFailures(t *testing.T) {
	recorder := telemetry.NewRecorder()
	metrics := newRequestMetrics(brokenMeter{}, recorder)

	warnings := recorder.Warnings()
	require.Len(t, warnings, 2)
	require.Equal(t, report_client_metrics, warnings[0].Id)
	require.EqualError(t, warnings[0].Params[0].(error), "counter unavailable")
	require.EqualError(t, warnings[1].Params[0].(error), "histogram unavailable")

	require.NotPanics(t, func() {
		metrics.record(context.Background(), StepSearch, time.Now(), nil)
	})
}

func TestRequestMetricsRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := telemetry.NewRecorder()

	metrics := newRequestMetrics(provider.Meter("test"), recorder)
	require.Empty(t, recorder.Warnings())

	ctx := context.Background()
	metrics.record(ctx, StepBootstrap, time.Now(), nil)
	metrics.record(ctx, StepSearch, time.Now(), errors.New("boom"))

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &collected))
	require.Len(t, collected.ScopeMetrics, 1)

	var total int64
	var histogramCount uint64
	for _, m := range collected.ScopeMetrics[0].Metrics {
		switch data := m.Data.(type) {
		case metricdata.Sum[int64]:
			require.Equal(t, "sundhed.requests", m.Name)
			for _, point := range data.DataPoints {
				total += point.Value
			}
		case metricdata.Histogram[float64]:
			require.Equal(t, "sundhed.request.duration", m.Name)
			for _, point := range data.DataPoints {
				histogramCount += point.Count
			}
		}
	}
	require.Equal(t, int64(2), total)
	require.Equal(t, uint64(2), histogramCount)
}
