package observe

import (
	"context"

	"github.com/jonwraymond/callguard/resilience"
)

// LoggingSink writes structured log lines for resilience events.
// Successful attempts log at debug, failures at warn, and breaker
// transitions at info: enough for an operator to tell "dependency is
// known-bad" apart from "dependency is flaky" without a metrics
// backend.
type LoggingSink struct {
	logger Logger
}

// NewLoggingSink creates a sink that logs through the given logger.
func NewLoggingSink(logger Logger) *LoggingSink {
	return &LoggingSink{logger: logger}
}

// RecordAttempt logs one execution attempt.
func (s *LoggingSink) RecordAttempt(ctx context.Context, a resilience.Attempt) {
	depLogger := s.logger.WithDependency(a.Dependency)
	fields := []Field{
		{Key: "attempt", Value: a.Number},
		{Key: "duration_ms", Value: float64(a.Duration.Milliseconds())},
	}

	if a.Err != nil {
		fields = append(fields,
			Field{Key: "kind", Value: a.Kind.String()},
			Field{Key: "error", Value: a.Err.Error()},
		)
		depLogger.Warn(ctx, "attempt failed", fields...)
		return
	}

	depLogger.Debug(ctx, "attempt succeeded", fields...)
}

// RecordStateChange logs one circuit breaker transition.
func (s *LoggingSink) RecordStateChange(ctx context.Context, c resilience.StateChange) {
	s.logger.WithDependency(c.Dependency).Info(ctx, "circuit breaker state changed",
		Field{Key: "from", Value: c.From.String()},
		Field{Key: "to", Value: c.To.String()},
	)
}

// multiSink fans events out to several sinks.
type multiSink struct {
	sinks []resilience.Sink
}

// MultiSink returns a sink that forwards every event to each of the
// given sinks in order.
func MultiSink(sinks ...resilience.Sink) resilience.Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) RecordAttempt(ctx context.Context, a resilience.Attempt) {
	for _, s := range m.sinks {
		s.RecordAttempt(ctx, a)
	}
}

func (m *multiSink) RecordStateChange(ctx context.Context, c resilience.StateChange) {
	for _, s := range m.sinks {
		s.RecordStateChange(ctx, c)
	}
}

// Ensure implementations satisfy resilience.Sink
var (
	_ resilience.Sink = (*LoggingSink)(nil)
	_ resilience.Sink = (*multiSink)(nil)
)
