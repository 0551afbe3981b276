package resilience

import (
	"context"
	"time"

	"github.com/jonwraymond/callguard/classify"
)

// Attempt is the record of one execution try, emitted to the Sink as
// soon as the attempt completes. It is not retained.
type Attempt struct {
	// Dependency is the logical dependency name.
	Dependency string

	// Number is the 1-based attempt number within one execution.
	Number int

	// StartedAt is when the attempt began.
	StartedAt time.Time

	// Duration is how long the attempt took.
	Duration time.Duration

	// Err is nil on success; otherwise the attempt's error.
	Err error

	// Kind is the classification of Err. Meaningless when Err is nil.
	Kind classify.FailureKind
}

// StateChange records a circuit breaker transition.
type StateChange struct {
	// Dependency is the breaker's dependency name.
	Dependency string

	// From and To are the states on either side of the transition.
	From, To State

	// At is when the transition happened.
	At time.Time
}

// Sink collects execution events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods must be non-blocking and return quickly.
// - Errors: recording is fire-and-forget; implementations must not
//   panic, and have no way to propagate failure to the caller.
type Sink interface {
	// RecordAttempt records one execution attempt.
	RecordAttempt(ctx context.Context, a Attempt)

	// RecordStateChange records one breaker transition.
	RecordStateChange(ctx context.Context, c StateChange)
}

// NopSink is a Sink that discards all events.
type NopSink struct{}

// RecordAttempt discards the event.
func (NopSink) RecordAttempt(ctx context.Context, a Attempt) {}

// RecordStateChange discards the event.
func (NopSink) RecordStateChange(ctx context.Context, c StateChange) {}

// safeRecordAttempt shields callers from a misbehaving sink. A broken
// metrics pipeline must not fail business calls.
func safeRecordAttempt(ctx context.Context, s Sink, a Attempt) {
	defer func() { _ = recover() }()
	s.RecordAttempt(ctx, a)
}

func safeRecordStateChange(ctx context.Context, s Sink, c StateChange) {
	defer func() { _ = recover() }()
	s.RecordStateChange(ctx, c)
}
