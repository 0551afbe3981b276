package cache

import "time"

// Policy configures how long results stay servable.
//
// A fresh result short-circuits the live call entirely. A stale copy
// outlives the fresh window and is only served through a Stale
// fallback operation when the live chain is exhausted.
type Policy struct {
	// FreshTTL is how long a result is served without calling the
	// dependency. Zero disables read-through caching; stale copies
	// are still kept if StaleTTL is set.
	FreshTTL time.Duration

	// StaleTTL is how long a result remains eligible for stale
	// fallback. Zero disables stale copies.
	StaleTTL time.Duration

	// MaxTTL caps both windows. Zero means no cap.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default caching policy.
// FreshTTL: 1 minute, StaleTTL: 1 hour, MaxTTL: 24 hours.
func DefaultPolicy() Policy {
	return Policy{
		FreshTTL: 1 * time.Minute,
		StaleTTL: 1 * time.Hour,
		MaxTTL:   24 * time.Hour,
	}
}

// StaleOnlyPolicy returns a policy that never short-circuits live
// calls but keeps results available for stale fallback.
func StaleOnlyPolicy(staleTTL time.Duration) Policy {
	return Policy{
		FreshTTL: 0,
		StaleTTL: staleTTL,
	}
}

// ServesFresh returns true if the policy short-circuits live calls.
func (p Policy) ServesFresh() bool {
	return p.clamp(p.FreshTTL) > 0
}

// KeepsStale returns true if the policy retains stale copies.
func (p Policy) KeepsStale() bool {
	return p.clamp(p.StaleTTL) > 0
}

// EffectiveFreshTTL returns the fresh window after clamping.
func (p Policy) EffectiveFreshTTL() time.Duration {
	return p.clamp(p.FreshTTL)
}

// EffectiveStaleTTL returns the stale window after clamping.
func (p Policy) EffectiveStaleTTL() time.Duration {
	return p.clamp(p.StaleTTL)
}

func (p Policy) clamp(ttl time.Duration) time.Duration {
	if ttl < 0 {
		return 0
	}
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		return p.MaxTTL
	}
	return ttl
}
