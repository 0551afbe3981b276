package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/callguard/resilience"
)

// BreakerChecker reports dependency health from the circuit breaker
// registry: closed breakers are healthy, half-open breakers are
// degraded, open breakers are unhealthy.
type BreakerChecker struct {
	registry *resilience.Registry
}

// NewBreakerChecker creates a checker over the given registry.
func NewBreakerChecker(registry *resilience.Registry) *BreakerChecker {
	return &BreakerChecker{registry: registry}
}

// Name returns the name of this checker.
func (c *BreakerChecker) Name() string {
	return "breakers"
}

// Check reports the worst state across all registered breakers, with
// per-dependency detail.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	snapshots := c.registry.Snapshots()
	if len(snapshots) == 0 {
		return Healthy("no breakers registered")
	}

	details := make(map[string]any, len(snapshots))
	var open, halfOpen []string

	for _, snap := range snapshots {
		details[snap.Name] = map[string]any{
			"state":                snap.State.String(),
			"consecutive_failures": snap.ConsecutiveFailures,
		}

		switch snap.State {
		case resilience.StateOpen:
			open = append(open, snap.Name)
		case resilience.StateHalfOpen:
			halfOpen = append(halfOpen, snap.Name)
		}
	}

	switch {
	case len(open) > 0:
		return Unhealthy(
			fmt.Sprintf("%d of %d breakers open", len(open), len(snapshots)),
			ErrCheckFailed,
		).WithDetails(details)
	case len(halfOpen) > 0:
		return Degraded(
			fmt.Sprintf("%d of %d breakers half-open", len(halfOpen), len(snapshots)),
		).WithDetails(details)
	default:
		return Healthy(
			fmt.Sprintf("all %d breakers closed", len(snapshots)),
		).WithDetails(details)
	}
}
