package resilience

import "sync"

// Registry owns the circuit breakers for a process, keyed by
// dependency name. Breakers are created lazily on first use with the
// registry's config and live for the registry's lifetime; they are
// never removed, so every caller of a dependency shares one breaker.
type Registry struct {
	config BreakerConfig

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewRegistry creates a registry whose breakers use the given config.
func NewRegistry(config BreakerConfig) *Registry {
	return &Registry{
		config:   config,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for the named dependency, creating it on
// first use.
func (r *Registry) Get(name string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.breakers[name]
	if !ok {
		b = NewBreaker(name, r.config)
		r.breakers[name] = b
	}
	return b
}

// Names returns the dependency names with registered breakers.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.breakers))
	for name := range r.breakers {
		names = append(names, name)
	}
	return names
}

// Snapshots returns a point-in-time view of every registered breaker.
func (r *Registry) Snapshots() []BreakerSnapshot {
	r.mu.Lock()
	breakers := make([]*Breaker, 0, len(r.breakers))
	for _, b := range r.breakers {
		breakers = append(breakers, b)
	}
	r.mu.Unlock()

	// Snapshot outside the registry lock; each breaker takes its own.
	snaps := make([]BreakerSnapshot, 0, len(breakers))
	for _, b := range breakers {
		snaps = append(snaps, b.Snapshot())
	}
	return snaps
}
