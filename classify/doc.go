// Package classify maps operation failures to failure kinds.
//
// The resilience layers decide whether to retry, trip a breaker, or
// fail fast based on the kind of failure an operation produced, not on
// the raw error value. This package provides that mapping as a pure,
// total function: Classify never panics and never fails; an error it
// cannot recognize degrades to KindUnknown.
//
// # Kinds
//
//   - KindTransient: connectivity blips, connection resets, 5xx-class
//     responses. Safe to retry.
//   - KindRateLimited: the dependency asked us to slow down (429,
//     quota exhaustion). Safe to retry, optionally after a hinted wait.
//   - KindTimeout: the operation exceeded its deadline. Safe to retry.
//   - KindPermanent: validation, authorization, malformed input.
//     Retrying cannot help.
//   - KindUnknown: unclassifiable. Treated conservatively as
//     non-retryable.
//
// # Usage
//
//	c := classify.Classify(err)
//	if c.Kind == classify.KindRateLimited && c.RetryAfter > 0 {
//	    // honor the server's hint
//	}
//
// Operations that know their own failure mode can tag errors directly:
//
//	return classify.Permanent(fmt.Errorf("bad request: %w", err))
//
// Tagged errors short-circuit classification and survive wrapping with
// fmt.Errorf("...: %w", err).
package classify
