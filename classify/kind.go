package classify

import "time"

// FailureKind is the classification tag for a failed operation outcome.
type FailureKind int

const (
	// KindUnknown means the failure could not be classified.
	// Treated conservatively as non-retryable.
	KindUnknown FailureKind = iota
	// KindTransient means a connectivity blip or 5xx-class condition.
	KindTransient
	// KindRateLimited means the dependency rejected the call due to
	// rate or quota limits.
	KindRateLimited
	// KindTimeout means the operation exceeded its deadline.
	KindTimeout
	// KindPermanent means a validation or authorization failure that
	// retrying cannot fix.
	KindPermanent
)

// String returns the string representation of the kind.
func (k FailureKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindPermanent:
		return "permanent"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Retryable reports whether the kind is retryable under the default
// policy. Permanent and Unknown failures are not.
func (k FailureKind) Retryable() bool {
	switch k {
	case KindTransient, KindRateLimited, KindTimeout:
		return true
	default:
		return false
	}
}

// Classification is the result of classifying a failure.
type Classification struct {
	// Kind is the failure kind.
	Kind FailureKind

	// RetryAfter is the wait hinted by the dependency, when it
	// provided one (rate-limit responses). Zero means no hint.
	RetryAfter time.Duration
}
