package cache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/callguard/resilience"
)

// CallFunc is the function signature for one dependency call.
type CallFunc func(ctx context.Context) ([]byte, error)

// SkipRule decides whether caching is skipped for a dependency.
// Returns true to bypass the cache entirely.
type SkipRule func(dependency string) bool

// ResultCache wraps dependency calls with read-through caching and
// keeps a longer-lived stale copy of every good result.
//
// Fresh copies short-circuit the call. Stale copies are only served
// through the operation returned by Stale, typically wired as the
// last step of a fallback chain.
type ResultCache struct {
	cache  Cache
	keyer  Keyer
	policy Policy
	skip   SkipRule
	group  singleflight.Group
}

// ResultCacheOption customizes a ResultCache.
type ResultCacheOption func(*ResultCache)

// WithSkipRule sets a rule that bypasses caching per dependency.
func WithSkipRule(rule SkipRule) ResultCacheOption {
	return func(rc *ResultCache) {
		rc.skip = rule
	}
}

// NewResultCache creates a result cache over the given store.
func NewResultCache(store Cache, keyer Keyer, policy Policy, opts ...ResultCacheOption) *ResultCache {
	rc := &ResultCache{
		cache:  store,
		keyer:  keyer,
		policy: policy,
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Execute runs the call with caching.
//
// A fresh cache hit returns without calling fn. On a miss, concurrent
// executions for the same key share a single call. A successful result
// is stored twice: a fresh copy and a stale copy under a separate key
// with the longer TTL. Errors are never cached.
func (rc *ResultCache) Execute(ctx context.Context, dependency string, input any, fn CallFunc) ([]byte, error) {
	if rc.skip != nil && rc.skip(dependency) {
		return fn(ctx)
	}
	if !rc.policy.ServesFresh() && !rc.policy.KeepsStale() {
		return fn(ctx)
	}

	key, err := rc.keyer.Key(dependency, input)
	if err != nil {
		// Unkeyable input - execute without caching.
		return fn(ctx)
	}

	if rc.policy.ServesFresh() {
		if cached, ok := rc.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	// Collapse concurrent misses for the same key into one call.
	result, err, _ := rc.group.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		rc.store(ctx, key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Stale returns an operation serving the last good result for the
// given call, or ErrNoStaleValue when none is cached. Use it as the
// terminal step of a fallback chain.
func (rc *ResultCache) Stale(dependency string, input any) resilience.ValueOperation[[]byte] {
	return func(ctx context.Context) ([]byte, error) {
		key, err := rc.keyer.Key(dependency, input)
		if err != nil {
			return nil, err
		}
		if value, ok := rc.cache.Get(ctx, staleKey(key)); ok {
			return value, nil
		}
		return nil, ErrNoStaleValue
	}
}

// Invalidate drops both the fresh and stale copies for a call.
func (rc *ResultCache) Invalidate(ctx context.Context, dependency string, input any) error {
	key, err := rc.keyer.Key(dependency, input)
	if err != nil {
		return err
	}
	if err := rc.cache.Delete(ctx, key); err != nil {
		return err
	}
	return rc.cache.Delete(ctx, staleKey(key))
}

func (rc *ResultCache) store(ctx context.Context, key string, value []byte) {
	if ttl := rc.policy.EffectiveFreshTTL(); ttl > 0 {
		_ = rc.cache.Set(ctx, key, value, ttl)
	}
	if ttl := rc.policy.EffectiveStaleTTL(); ttl > 0 {
		_ = rc.cache.Set(ctx, staleKey(key), value, ttl)
	}
}

func staleKey(key string) string {
	return key + ":stale"
}
