package resilience

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/jonwraymond/callguard/classify"
)

// Policy configures retry and backoff behavior. The zero value is
// usable; fields left at zero take the documented defaults.
type Policy struct {
	// MaxAttempts is the maximum number of attempts (including the
	// first). The attempt count never exceeds this value regardless of
	// circuit-breaker state.
	// Default: 3
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	// Default: 100ms
	BaseDelay time.Duration

	// MaxDelay caps the delay between attempts, including delays taken
	// from a rate-limit retry-after hint.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier is the exponential growth factor. The wait before
	// attempt n (n >= 2) grows as BaseDelay * Multiplier^(n-2).
	// Default: 2.0
	Multiplier float64

	// JitterFraction is the portion of each delay that is randomized
	// (full jitter over that portion), between 0.0 and 1.0. Zero
	// disables jitter.
	// Default: 0 (set explicitly; see DefaultJitterFraction)
	JitterFraction float64

	// RetryOn is the set of failure kinds that trigger a retry.
	// Default: Transient, RateLimited, Timeout
	RetryOn []classify.FailureKind
}

// DefaultJitterFraction is the jitter applied by DefaultPolicy.
const DefaultJitterFraction = 0.25

// DefaultPolicy returns the policy used when an Executor is built
// without one.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		BaseDelay:      100 * time.Millisecond,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: DefaultJitterFraction,
	}
}

// normalized returns a copy with defaults applied and out-of-range
// fields clamped.
func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 3
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 100 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	if p.Multiplier <= 1.0 {
		p.Multiplier = 2.0
	}
	if p.JitterFraction < 0 {
		p.JitterFraction = 0
	}
	if p.JitterFraction > 1 {
		p.JitterFraction = 1
	}
	if p.RetryOn == nil {
		p.RetryOn = []classify.FailureKind{
			classify.KindTransient,
			classify.KindRateLimited,
			classify.KindTimeout,
		}
	}
	return p
}

// retryable reports whether the policy retries the given kind.
func (p Policy) retryable(kind classify.FailureKind) bool {
	for _, k := range p.RetryOn {
		if k == kind {
			return true
		}
	}
	return false
}

// Delay computes the wait before the given attempt. Attempt 1 never
// waits. A positive retry-after hint takes precedence over the
// computed backoff, clamped to MaxDelay.
func (p Policy) Delay(attempt int, hint time.Duration) time.Duration {
	if attempt <= 1 {
		return 0
	}

	if hint > 0 {
		return min(hint, p.MaxDelay)
	}

	// Compare in float space so large exponents clamp instead of
	// overflowing the duration.
	scaled := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-2))
	delay := p.MaxDelay
	if scaled < float64(p.MaxDelay) {
		delay = time.Duration(scaled)
	}

	// Full jitter over the randomized portion avoids synchronized
	// retry storms across concurrent callers.
	if p.JitterFraction > 0 {
		jittered := float64(delay) * p.JitterFraction
		fixed := float64(delay) - jittered
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay = time.Duration(fixed + rand.Float64()*jittered)
	}

	return delay
}
