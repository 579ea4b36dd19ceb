package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/saiful-70/ai-rate-limiter/internal/ratelimit"
)

// InstrumentedLimiter wraps a ratelimit.Limiter with OpenTelemetry metrics.
// Admission decisions are counted by tier and outcome, and decision latency
// is recorded as a histogram.
type InstrumentedLimiter struct {
	inner      ratelimit.Limiter
	admissions metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewInstrumentedLimiter creates a limiter wrapper that records an admission
// counter and a decision latency histogram for every consuming check.
func NewInstrumentedLimiter(inner ratelimit.Limiter) (*InstrumentedLimiter, error) {
	meter := otel.Meter("aigate/ratelimit")

	admissions, err := meter.Int64Counter(
		"ratelimit.admission.decisions",
		metric.WithDescription("Number of admission decisions by tier and outcome"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"ratelimit.admission.duration",
		metric.WithDescription("Duration of admission decisions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &InstrumentedLimiter{
		inner:      inner,
		admissions: admissions,
		duration:   duration,
	}, nil
}

func (l *InstrumentedLimiter) CheckAndConsume(identity *ratelimit.Identity, originAddr string) ratelimit.Result {
	start := time.Now()
	result := l.inner.CheckAndConsume(identity, originAddr)
	elapsed := time.Since(start).Seconds()

	outcome := "admitted"
	if !result.Admitted {
		outcome = "denied"
	}
	attrs := metric.WithAttributes(
		attribute.String("tier", result.Tier),
		attribute.String("outcome", outcome),
	)

	ctx := context.Background()
	l.admissions.Add(ctx, 1, attrs)
	l.duration.Record(ctx, elapsed, attrs)

	return result
}

func (l *InstrumentedLimiter) PeekStatus(identity *ratelimit.Identity, originAddr string) ratelimit.Status {
	return l.inner.PeekStatus(identity, originAddr)
}

func (l *InstrumentedLimiter) Reset(identity *ratelimit.Identity, originAddr string) {
	l.inner.Reset(identity, originAddr)
}

func (l *InstrumentedLimiter) Snapshot() map[string]ratelimit.SnapshotEntry {
	return l.inner.Snapshot()
}

func (l *InstrumentedLimiter) Close() {
	l.inner.Close()
}
