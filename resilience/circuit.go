package resilience

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is rejecting all calls.
	StateOpen
	// StateHalfOpen means the circuit is probing whether the
	// dependency recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a circuit breaker. Thresholds are
// configuration, not state: they are fixed at construction.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that
	// opens the circuit.
	// Default: 5
	FailureThreshold int

	// ResetTimeout is how long an open circuit waits before letting a
	// probe through.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// MaxHalfOpenProbes is the number of concurrent trial calls
	// permitted while half-open.
	// Default: 1
	MaxHalfOpenProbes int

	// OnStateChange is called on every transition, while the breaker's
	// lock is held; it must be fast and must not call back into the
	// breaker.
	OnStateChange func(name string, from, to State)

	// Sink, when set, receives a StateChange event per transition.
	Sink Sink
}

// Breaker tracks the health of one named dependency and stops calls
// to it while it is persistently failing.
//
// The executor drives it: Allow before each attempt, then exactly one
// of RecordSuccess or RecordFailure per permitted attempt. All methods
// are safe for concurrent use; each call is atomic with respect to
// concurrent callers of the same breaker.
type Breaker struct {
	name   string
	config BreakerConfig

	mu             sync.Mutex
	state          State
	failures       int
	lastFailure    time.Time
	probesInFlight int
}

// NewBreaker creates a circuit breaker for the named dependency.
func NewBreaker(name string, config BreakerConfig) *Breaker {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.MaxHalfOpenProbes <= 0 {
		config.MaxHalfOpenProbes = 1
	}

	return &Breaker{
		name:   name,
		config: config,
		state:  StateClosed,
	}
}

// Name returns the dependency name the breaker guards.
func (b *Breaker) Name() string {
	return b.name
}

// Allow reports whether a call may proceed. It returns ErrCircuitOpen
// when the circuit is open, or when it is half-open and all probe
// slots are taken. The first Allow after ResetTimeout elapses moves an
// open circuit to half-open and claims the call as a probe.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probesInFlight >= b.config.MaxHalfOpenProbes {
			return ErrCircuitOpen
		}
		b.probesInFlight++
	}

	return nil
}

// RecordSuccess reports a successful call. A closed breaker resets its
// consecutive-failure count; a half-open breaker closes.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.failures = 0
		b.transitionLocked(StateClosed)
	}
}

// RecordFailure reports a failed call. A closed breaker opens once the
// consecutive-failure count reaches the threshold; a half-open breaker
// reopens and restarts the reset clock.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		b.lastFailure = time.Now()
		if b.failures >= b.config.FailureThreshold {
			b.transitionLocked(StateOpen)
		}
	case StateHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.lastFailure = time.Now()
		b.transitionLocked(StateOpen)
	}
}

// release abandons a slot claimed by Allow without running the call,
// e.g. when the deadline expires during the backoff sleep.
func (b *Breaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen && b.probesInFlight > 0 {
		b.probesInFlight--
	}
}

// Execute runs the operation through the breaker, reporting the
// outcome. Most callers want the Executor instead, which adds retries
// and classification.
func (b *Breaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := op(ctx)
	if err != nil {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

// State returns the current circuit state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked()
}

// Reset returns the breaker to closed and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.probesInFlight = 0
	if b.state != StateClosed {
		b.transitionLocked(StateClosed)
	}
}

// currentStateLocked applies the lazy Open -> HalfOpen transition once
// ResetTimeout has elapsed. Callers must hold b.mu.
func (b *Breaker) currentStateLocked() State {
	if b.state == StateOpen && time.Since(b.lastFailure) >= b.config.ResetTimeout {
		b.probesInFlight = 0
		b.transitionLocked(StateHalfOpen)
	}
	return b.state
}

// transitionLocked moves to the new state and emits the transition.
// Callers must hold b.mu.
func (b *Breaker) transitionLocked(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to

	if b.config.OnStateChange != nil {
		b.config.OnStateChange(b.name, from, to)
	}
	if b.config.Sink != nil {
		safeRecordStateChange(context.Background(), b.config.Sink, StateChange{
			Dependency: b.name,
			From:       from,
			To:         to,
			At:         time.Now(),
		})
	}
}

// Snapshot returns a point-in-time view of the breaker's state.
func (b *Breaker) Snapshot() BreakerSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BreakerSnapshot{
		Name:                b.name,
		State:               b.currentStateLocked(),
		ConsecutiveFailures: b.failures,
		LastFailure:         b.lastFailure,
		ProbesInFlight:      b.probesInFlight,
	}
}

// BreakerSnapshot contains circuit breaker statistics.
type BreakerSnapshot struct {
	Name                string
	State               State
	ConsecutiveFailures int
	LastFailure         time.Time
	ProbesInFlight      int
}
