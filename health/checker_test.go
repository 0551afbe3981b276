package health

import (
	"context"
	"errors"
	"testing"
)

// TestStatus_String verifies the string representations.
func TestStatus_String(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}

	for _, tc := range cases {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

// TestResultConstructors verifies the result helper functions.
func TestResultConstructors(t *testing.T) {
	h := Healthy("all good")
	if h.Status != StatusHealthy || h.Message != "all good" {
		t.Errorf("unexpected healthy result: %+v", h)
	}
	if h.Timestamp.IsZero() {
		t.Error("expected timestamp set")
	}

	d := Degraded("slow")
	if d.Status != StatusDegraded {
		t.Errorf("expected degraded, got %v", d.Status)
	}

	cause := errors.New("boom")
	u := Unhealthy("down", cause)
	if u.Status != StatusUnhealthy || !errors.Is(u.Error, cause) {
		t.Errorf("unexpected unhealthy result: %+v", u)
	}
}

// TestResult_WithDetails verifies detail attachment.
func TestResult_WithDetails(t *testing.T) {
	r := Healthy("ok").WithDetails(map[string]any{"count": 3})
	if r.Details["count"] != 3 {
		t.Errorf("expected details attached, got %v", r.Details)
	}
}

// TestCheckerFunc verifies the function adapter.
func TestCheckerFunc(t *testing.T) {
	checker := NewCheckerFunc("custom", func(ctx context.Context) Result {
		return Healthy("ok")
	})

	if checker.Name() != "custom" {
		t.Errorf("expected name 'custom', got %q", checker.Name())
	}
	if result := checker.Check(context.Background()); result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %v", result.Status)
	}
}
