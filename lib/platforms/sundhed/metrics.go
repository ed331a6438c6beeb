package sundhed

import (
	"context"
	"findbehandler/internal/components/telemetry"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// per step request counter and duration histogram
type requestMetrics struct {
	count    metric.Int64Counter
	duration metric.Float64Histogram
}

// instruments that cannot be created are reported and replaced with no-ops
func newRequestMetrics(meter metric.Meter, tel telemetry.API) requestMetrics {
	count, err := meter.Int64Counter(
		"sundhed.requests",
		metric.WithDescription("requests made to sundhed.dk"),
	)
	if err != nil {
		tel.ReportWarning(report_client_metrics, err)
		count = noop.Int64Counter{}
	}
	duration, err := meter.Float64Histogram(
		"sundhed.request.duration",
		metric.WithDescription("duration of requests made to sundhed.dk"),
		metric.WithUnit("s"),
	)
	if err != nil {
		tel.ReportWarning(report_client_metrics, err)
		duration = noop.Float64Histogram{}
	}
	return requestMetrics{count: count, duration: duration}
}

func (m requestMetrics) record(ctx context.Context, step Step, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("step", string(step)),
		attribute.Bool("ok", err == nil),
	)
	m.count.Add(ctx, 1, attrs)
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}
