package resilience

import (
	"context"
	"time"

	"github.com/jonwraymond/callguard/classify"
)

// Operation is a fallible unit of work.
type Operation func(ctx context.Context) error

// ValueOperation is a fallible unit of work that produces a value.
type ValueOperation[T any] func(ctx context.Context) (T, error)

// Executor runs one operation against a named dependency under a
// retry policy and a circuit breaker.
//
// Attempts within one execution are strictly sequential. The breaker
// is consulted before every attempt and told about every outcome,
// permanent failures included: a permanent failure still means the
// dependency call did not succeed.
type Executor struct {
	name           string
	policy         Policy
	breaker        *Breaker
	bulkhead       *Bulkhead
	sink           Sink
	attemptTimeout time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates an executor for the named dependency. Without
// options it uses DefaultPolicy, a dedicated breaker with default
// thresholds, and no sink.
func NewExecutor(name string, opts ...ExecutorOption) *Executor {
	e := &Executor{
		name:   name,
		policy: DefaultPolicy(),
		sink:   NopSink{},
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.policy = e.policy.normalized()
	if e.breaker == nil {
		e.breaker = NewBreaker(name, BreakerConfig{})
	}
	return e
}

// WithPolicy sets the retry policy.
func WithPolicy(p Policy) ExecutorOption {
	return func(e *Executor) {
		e.policy = p
	}
}

// WithBreaker sets the circuit breaker. Use WithRegistry instead when
// the breaker should be shared across executors by dependency name.
func WithBreaker(b *Breaker) ExecutorOption {
	return func(e *Executor) {
		e.breaker = b
	}
}

// WithRegistry looks the executor's breaker up in the registry by
// dependency name, creating it on first use.
func WithRegistry(r *Registry) ExecutorOption {
	return func(e *Executor) {
		e.breaker = r.Get(e.name)
	}
}

// WithSink sets the event sink.
func WithSink(s Sink) ExecutorOption {
	return func(e *Executor) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithBulkhead caps concurrent executions against the dependency.
func WithBulkhead(b *Bulkhead) ExecutorOption {
	return func(e *Executor) {
		e.bulkhead = b
	}
}

// WithAttemptTimeout bounds each individual attempt, on top of the
// caller's overall deadline.
func WithAttemptTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.attemptTimeout = d
	}
}

// withSleep replaces the backoff sleep. Tests use it to run without
// real waiting.
func withSleep(sleep func(ctx context.Context, d time.Duration) error) ExecutorOption {
	return func(e *Executor) {
		e.sleep = sleep
	}
}

// Name returns the dependency name.
func (e *Executor) Name() string {
	return e.name
}

// Breaker returns the executor's circuit breaker.
func (e *Executor) Breaker() *Breaker {
	return e.breaker
}

// Execute runs the operation under the executor's policy. See Do for
// the failure taxonomy.
func (e *Executor) Execute(ctx context.Context, op Operation) error {
	_, err := Do(ctx, e, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Do runs a value-producing operation under the executor's policy.
//
// Terminal errors: ErrCircuitOpen when the breaker rejects the call
// (no attempt made), NonRetryableError on the first failure whose kind
// is outside the policy's retryable set, RetriesExhaustedError when
// the attempt budget runs out, ErrDeadlineExceeded / ErrCancelled when
// the caller's context ends the execution, and ErrBulkheadFull when a
// configured bulkhead is at capacity. Terminal errors are never
// swallowed; the caller decides final handling.
func Do[T any](ctx context.Context, e *Executor, op ValueOperation[T]) (T, error) {
	var zero T

	if e.bulkhead != nil {
		if err := e.bulkhead.Acquire(ctx); err != nil {
			return zero, err
		}
		defer e.bulkhead.Release()
	}

	var (
		lastErr  error
		lastKind classify.FailureKind
		hint     time.Duration
	)

	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, contextError(err)
		}

		// Rejection here is fail-fast: no attempt, no delay.
		if err := e.breaker.Allow(); err != nil {
			return zero, err
		}

		if attempt > 1 {
			delay := e.policy.Delay(attempt, hint)
			if deadline, ok := ctx.Deadline(); ok && delay > time.Until(deadline) {
				e.breaker.release()
				return zero, ErrDeadlineExceeded
			}
			if err := e.sleep(ctx, delay); err != nil {
				e.breaker.release()
				return zero, contextError(err)
			}
		}

		started := time.Now()
		value, err := runBounded(ctx, e.attemptTimeout, op)
		duration := time.Since(started)

		if err == nil {
			e.breaker.RecordSuccess()
			safeRecordAttempt(ctx, e.sink, Attempt{
				Dependency: e.name,
				Number:     attempt,
				StartedAt:  started,
				Duration:   duration,
			})
			return value, nil
		}

		e.breaker.RecordFailure()
		c := classify.Classify(err)
		safeRecordAttempt(ctx, e.sink, Attempt{
			Dependency: e.name,
			Number:     attempt,
			StartedAt:  started,
			Duration:   duration,
			Err:        err,
			Kind:       c.Kind,
		})

		lastErr = err
		lastKind = c.Kind
		hint = c.RetryAfter

		// The overall deadline, not the attempt's, ends the execution.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, contextError(ctxErr)
		}

		if !e.policy.retryable(c.Kind) {
			return zero, &NonRetryableError{Kind: c.Kind, Cause: err}
		}
	}

	return zero, &RetriesExhaustedError{
		Attempts: e.policy.MaxAttempts,
		Kind:     lastKind,
		Cause:    lastErr,
	}
}

// runBounded runs one attempt, optionally bounded by a per-attempt
// timeout, and stops waiting on it once the context is done. Whether
// the underlying operation is truly interrupted is the operation's
// own property.
func runBounded[T any](ctx context.Context, timeout time.Duration, op ValueOperation[T]) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)

	go func() {
		v, err := op(ctx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// sleepContext waits for the delay or the context, whichever ends
// first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
