// Package cache stores the last good result of dependency calls so
// that executions can fall back to a recent value when the live
// dependency is exhausted.
//
// The package provides the Cache interface with two stores: an
// in-memory TTL store for single-process use and a Redis-backed store
// for sharing stale values across replicas. ResultCache wraps a call
// with read-through caching, keeps a longer-lived stale copy of every
// good result, and suppresses concurrent duplicate calls for the same
// key. The Stale method produces an operation that serves the stale
// copy, suitable as the last step of a fallback chain.
//
// Usage:
//
//	rc := cache.NewResultCache(cache.NewMemoryCache(), cache.NewDefaultKeyer(), cache.DefaultPolicy())
//
//	live := func(ctx context.Context) ([]byte, error) {
//	    return rc.Execute(ctx, "payments-api", req, callPayments)
//	}
//
//	chain := resilience.NewChain([]resilience.Step[[]byte]{
//	    {Name: "live", Op: live},
//	    {Name: "stale", Op: rc.Stale("payments-api", req)},
//	})
package cache
