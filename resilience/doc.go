// Package resilience executes fallible operations under retry,
// circuit-breaking, and fallback policies.
//
// The package wraps an arbitrary operation (a call to a remote
// service, model endpoint, or tool) and runs it so that transient
// failures are retried with bounded, jittered exponential backoff,
// persistently failing dependencies stop being called, and an ordered
// chain of fallbacks can satisfy the call when the primary path is
// unavailable. Failures are classified (see the classify package) so
// permanent errors fail fast instead of burning the retry budget.
//
// # Components
//
//   - Policy: immutable retry/backoff configuration.
//
//   - Breaker: per-dependency circuit breaker with Closed, Open, and
//     HalfOpen states. Breakers live in a Registry keyed by dependency
//     name and are shared by every caller of that dependency.
//
//   - Executor: runs one operation under a Policy, consulting the
//     Breaker before each attempt and reporting every outcome to it.
//
//   - Chain: ordered fallback composition; each step has its own
//     policy and breaker so a failing primary does not poison a
//     fallback's health.
//
//   - Bulkhead: caps concurrent in-flight calls to one dependency.
//
//   - Sink: fire-and-forget collector for attempt and breaker
//     state-change events.
//
// # Usage
//
//	reg := resilience.NewRegistry(resilience.BreakerConfig{
//	    FailureThreshold: 5,
//	    ResetTimeout:     30 * time.Second,
//	})
//
//	ex := resilience.NewExecutor("billing-api",
//	    resilience.WithRegistry(reg),
//	    resilience.WithPolicy(resilience.Policy{
//	        MaxAttempts: 4,
//	        BaseDelay:   100 * time.Millisecond,
//	    }),
//	)
//
//	quote, err := resilience.Do(ctx, ex, func(ctx context.Context) (Quote, error) {
//	    return client.FetchQuote(ctx)
//	})
//
// Every execution is bounded by the caller's context deadline: backoff
// sleeps are cancellable and never extend past it, and no component
// silently extends the deadline.
package resilience
