package resilience

import (
	"context"
	"time"
)

// Step is one entry in a fallback chain: a named operation with its
// own retry policy. Each step gets its own breaker, so a failing
// primary does not poison a fallback's health.
type Step[T any] struct {
	// Name is the step's dependency name, used for breaker lookup and
	// event tagging.
	Name string

	// Policy is the step's retry policy. The zero value takes the
	// defaults.
	Policy Policy

	// Op is the step's operation.
	Op ValueOperation[T]
}

// Chain is an ordered sequence of fallback steps, fixed at
// construction. Execute tries each step in order under the caller's
// single shrinking deadline: time spent on earlier steps is never
// given back to later ones.
type Chain[T any] struct {
	executors []*Executor
	ops       []ValueOperation[T]
}

// chainConfig collects chain-level collaborators.
type chainConfig struct {
	registry       *Registry
	sink           Sink
	attemptTimeout time.Duration
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithChainRegistry sets the registry the chain's breakers come from.
// Without it each step gets a dedicated breaker with default
// thresholds.
func WithChainRegistry(r *Registry) ChainOption {
	return func(c *chainConfig) {
		c.registry = r
	}
}

// WithChainSink sets the event sink for every step.
func WithChainSink(s Sink) ChainOption {
	return func(c *chainConfig) {
		c.sink = s
	}
}

// WithChainAttemptTimeout bounds each individual attempt of every
// step.
func WithChainAttemptTimeout(d time.Duration) ChainOption {
	return func(c *chainConfig) {
		c.attemptTimeout = d
	}
}

// NewChain builds a fallback chain from the given steps. The first
// step is the primary; the rest are tried in order after the previous
// step's retries are exhausted.
func NewChain[T any](steps []Step[T], opts ...ChainOption) *Chain[T] {
	var cfg chainConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	chain := &Chain[T]{
		executors: make([]*Executor, 0, len(steps)),
		ops:       make([]ValueOperation[T], 0, len(steps)),
	}

	for _, step := range steps {
		execOpts := []ExecutorOption{WithPolicy(step.Policy)}
		if cfg.registry != nil {
			execOpts = append(execOpts, WithRegistry(cfg.registry))
		}
		if cfg.sink != nil {
			execOpts = append(execOpts, WithSink(cfg.sink))
		}
		if cfg.attemptTimeout > 0 {
			execOpts = append(execOpts, WithAttemptTimeout(cfg.attemptTimeout))
		}

		chain.executors = append(chain.executors, NewExecutor(step.Name, execOpts...))
		chain.ops = append(chain.ops, step.Op)
	}

	return chain
}

// Len returns the number of steps in the chain.
func (c *Chain[T]) Len() int {
	return len(c.executors)
}

// Execute tries each step in order and returns the first success
// along with the name of the step that satisfied the call.
//
// If every step fails, it returns a FallbacksExhaustedError
// aggregating each step's terminal error in chain order. A chain with
// no steps returns ErrChainEmpty.
func (c *Chain[T]) Execute(ctx context.Context) (T, string, error) {
	var zero T

	if len(c.executors) == 0 {
		return zero, "", ErrChainEmpty
	}

	stepErrs := make([]StepError, 0, len(c.executors))

	for i, ex := range c.executors {
		value, err := Do(ctx, ex, c.ops[i])
		if err == nil {
			return value, ex.Name(), nil
		}
		stepErrs = append(stepErrs, StepError{Step: ex.Name(), Err: err})
	}

	return zero, "", &FallbacksExhaustedError{Steps: stepErrs}
}
