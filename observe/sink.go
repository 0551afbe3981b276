package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/callguard/resilience"
)

// Sink records resilience events as OpenTelemetry metrics.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: must return quickly; instruments record asynchronously.
// - Errors: recording is fire-and-forget and never panics.
type Sink struct {
	attemptCount metric.Int64Counter
	failureCount metric.Int64Counter
	durationHist metric.Float64Histogram
	transitions  metric.Int64Counter
}

// NewSink creates a metrics sink backed by the given meter.
func NewSink(meter metric.Meter) (*Sink, error) {
	attemptCount, err := meter.Int64Counter(
		"callguard.attempts",
		metric.WithDescription("Total number of execution attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	failureCount, err := meter.Int64Counter(
		"callguard.attempt.failures",
		metric.WithDescription("Total number of failed attempts"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"callguard.attempt.duration_ms",
		metric.WithDescription("Attempt duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"callguard.breaker.transitions",
		metric.WithDescription("Total number of circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &Sink{
		attemptCount: attemptCount,
		failureCount: failureCount,
		durationHist: durationHist,
		transitions:  transitions,
	}, nil
}

// RecordAttempt records one execution attempt.
func (s *Sink) RecordAttempt(ctx context.Context, a resilience.Attempt) {
	attrs := []attribute.KeyValue{
		attribute.String("dependency", a.Dependency),
		attribute.Int("attempt", a.Number),
	}

	opt := metric.WithAttributes(attrs...)
	s.attemptCount.Add(ctx, 1, opt)
	s.durationHist.Record(ctx, float64(a.Duration.Milliseconds()), opt)

	if a.Err != nil {
		failAttrs := append(attrs, attribute.String("kind", a.Kind.String()))
		s.failureCount.Add(ctx, 1, metric.WithAttributes(failAttrs...))
	}
}

// RecordStateChange records one circuit breaker transition.
func (s *Sink) RecordStateChange(ctx context.Context, c resilience.StateChange) {
	s.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("dependency", c.Dependency),
		attribute.String("from", c.From.String()),
		attribute.String("to", c.To.String()),
	))
}

// Ensure Sink implements resilience.Sink
var _ resilience.Sink = (*Sink)(nil)
