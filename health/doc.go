// Package health reports the health of guarded dependencies for
// liveness and readiness probes.
//
// The central checker reads the circuit breaker registry: a closed
// breaker is healthy, a half-open breaker is degraded, and an open
// breaker is unhealthy. Additional checkers (such as the Redis cache
// ping) register on the Aggregator, which runs them with a shared
// timeout and folds the results into one overall status. HTTP handlers
// expose the aggregate as plain text for probes and as JSON for
// operators.
//
// Usage:
//
//	agg := health.NewAggregator()
//	agg.Register("breakers", health.NewBreakerChecker(registry))
//	agg.Register("redis-cache", health.NewRedisChecker(client))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
package health
