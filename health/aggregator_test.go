package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func staticChecker(result Result) Checker {
	return NewCheckerFunc("static", func(ctx context.Context) Result {
		return result
	})
}

// TestAggregator_RegisterAndCheck verifies a registered checker runs.
func TestAggregator_RegisterAndCheck(t *testing.T) {
	agg := NewAggregator()
	agg.Register("db", staticChecker(Healthy("ok")))

	result, err := agg.Check(context.Background(), "db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %v", result.Status)
	}
	if result.Duration <= 0 {
		t.Error("expected duration recorded")
	}
}

// TestAggregator_CheckUnknownName verifies unknown names return
// ErrCheckerNotFound.
func TestAggregator_CheckUnknownName(t *testing.T) {
	agg := NewAggregator()

	_, err := agg.Check(context.Background(), "missing")
	if !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("expected ErrCheckerNotFound, got %v", err)
	}
}

// TestAggregator_CheckAll verifies all checkers run and are keyed by name.
func TestAggregator_CheckAll(t *testing.T) {
	agg := NewAggregator()
	agg.Register("a", staticChecker(Healthy("ok")))
	agg.Register("b", staticChecker(Degraded("slow")))
	agg.Register("c", staticChecker(Unhealthy("down", ErrCheckFailed)))

	results := agg.CheckAll(context.Background())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results["a"].Status != StatusHealthy {
		t.Errorf("expected a healthy, got %v", results["a"].Status)
	}
	if results["b"].Status != StatusDegraded {
		t.Errorf("expected b degraded, got %v", results["b"].Status)
	}
	if results["c"].Status != StatusUnhealthy {
		t.Errorf("expected c unhealthy, got %v", results["c"].Status)
	}
}

// TestAggregator_CheckAllEmpty verifies an empty aggregator returns no results.
func TestAggregator_CheckAllEmpty(t *testing.T) {
	agg := NewAggregator()

	results := agg.CheckAll(context.Background())
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if OverallStatus(results) != StatusHealthy {
		t.Error("empty result set should be healthy")
	}
}

// TestAggregator_StuckCheckerTimesOut verifies a stuck checker reports
// unhealthy with ErrCheckTimeout instead of blocking the aggregate.
func TestAggregator_StuckCheckerTimesOut(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 20 * time.Millisecond})
	agg.Register("stuck", NewCheckerFunc("stuck", func(ctx context.Context) Result {
		<-ctx.Done()
		time.Sleep(time.Second)
		return Healthy("too late")
	}))

	start := time.Now()
	results := agg.CheckAll(context.Background())
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("aggregate blocked on stuck checker: %v", elapsed)
	}

	result := results["stuck"]
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %v", result.Status)
	}
	if !errors.Is(result.Error, ErrCheckTimeout) {
		t.Errorf("expected ErrCheckTimeout, got %v", result.Error)
	}
}

// TestAggregator_Unregister verifies unregistered checkers no longer run.
func TestAggregator_Unregister(t *testing.T) {
	agg := NewAggregator()
	agg.Register("a", staticChecker(Healthy("ok")))
	agg.Register("b", staticChecker(Healthy("ok")))
	agg.Unregister("a")

	if names := agg.CheckerNames(); len(names) != 1 || names[0] != "b" {
		t.Errorf("expected [b], got %v", names)
	}
	if _, err := agg.Check(context.Background(), "a"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("expected ErrCheckerNotFound after unregister, got %v", err)
	}
}

// TestAggregator_RegisterPreservesOrder verifies names keep registration order.
func TestAggregator_RegisterPreservesOrder(t *testing.T) {
	agg := NewAggregator()
	agg.Register("first", staticChecker(Healthy("ok")))
	agg.Register("second", staticChecker(Healthy("ok")))
	agg.Register("first", staticChecker(Degraded("replaced")))

	names := agg.CheckerNames()
	if len(names) != 2 || names[0] != "first" || names[1] != "second" {
		t.Errorf("expected [first second], got %v", names)
	}
}

// TestOverallStatus verifies worst-of folding.
func TestOverallStatus(t *testing.T) {
	cases := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{"all healthy", map[string]Result{
			"a": Healthy(""), "b": Healthy(""),
		}, StatusHealthy},
		{"one degraded", map[string]Result{
			"a": Healthy(""), "b": Degraded(""),
		}, StatusDegraded},
		{"unhealthy wins", map[string]Result{
			"a": Degraded(""), "b": Unhealthy("", nil),
		}, StatusUnhealthy},
		{"empty", map[string]Result{}, StatusHealthy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OverallStatus(tc.results); got != tc.want {
				t.Errorf("OverallStatus = %v, want %v", got, tc.want)
			}
		})
	}
}
