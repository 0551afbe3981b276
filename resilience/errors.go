package resilience

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/callguard/classify"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a
	// call without attempting it.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrDeadlineExceeded is returned when the caller's deadline
	// expires before the execution can complete.
	ErrDeadlineExceeded = errors.New("resilience: deadline exceeded")

	// ErrCancelled is returned when the caller cancels the execution.
	ErrCancelled = errors.New("resilience: execution cancelled")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")

	// ErrChainEmpty is returned when a fallback chain has no steps.
	ErrChainEmpty = errors.New("resilience: fallback chain has no steps")
)

// NonRetryableError reports a failure whose kind rules out retries.
// The executor returns it after the first occurrence, without
// consuming the remaining attempt budget.
type NonRetryableError struct {
	// Kind is the classification that stopped the retries.
	Kind classify.FailureKind

	// Cause is the operation's error.
	Cause error
}

// Error implements the error interface.
func (e *NonRetryableError) Error() string {
	return fmt.Sprintf("resilience: non-retryable %s failure: %v", e.Kind, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *NonRetryableError) Unwrap() error { return e.Cause }

// RetriesExhaustedError reports that every permitted attempt failed
// with a retryable kind.
type RetriesExhaustedError struct {
	// Attempts is the number of attempts made.
	Attempts int

	// Kind is the classification of the last failure.
	Kind classify.FailureKind

	// Cause is the last attempt's error.
	Cause error
}

// Error implements the error interface.
func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("resilience: %d attempts exhausted, last failure %s: %v",
		e.Attempts, e.Kind, e.Cause)
}

// Unwrap returns the last attempt's error.
func (e *RetriesExhaustedError) Unwrap() error { return e.Cause }

// StepError pairs a fallback step's name with its terminal error.
type StepError struct {
	// Step is the step's dependency name.
	Step string

	// Err is the terminal error the step's executor returned.
	Err error
}

// FallbacksExhaustedError reports that every step in a fallback chain
// failed. Steps holds each step's terminal error in chain order.
type FallbacksExhaustedError struct {
	Steps []StepError
}

// Error implements the error interface.
func (e *FallbacksExhaustedError) Error() string {
	var sb strings.Builder
	sb.WriteString("resilience: all fallbacks exhausted")
	for _, s := range e.Steps {
		fmt.Fprintf(&sb, "; %s: %v", s.Step, s.Err)
	}
	return sb.String()
}

// Unwrap returns each step's terminal error for errors.Is/As matching.
func (e *FallbacksExhaustedError) Unwrap() []error {
	errs := make([]error, len(e.Steps))
	for i, s := range e.Steps {
		errs[i] = s.Err
	}
	return errs
}

// contextError maps a context error to the execution-level sentinel,
// distinguishing caller cancellation from deadline expiry.
func contextError(err error) error {
	if errors.Is(err, context.Canceled) {
		return ErrCancelled
	}
	return ErrDeadlineExceeded
}
