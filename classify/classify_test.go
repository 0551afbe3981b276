package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
)

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil error", nil, KindUnknown},
		{"plain error", errors.New("boom"), KindUnknown},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"os deadline", os.ErrDeadlineExceeded, KindTimeout},
		{"canceled", context.Canceled, KindUnknown},
		{"connection refused", syscall.ECONNREFUSED, KindTransient},
		{"connection reset", syscall.ECONNRESET, KindTransient},
		{"broken pipe", syscall.EPIPE, KindTransient},
		{"net timeout", &fakeNetError{timeout: true}, KindTimeout},
		{"net non-timeout", &fakeNetError{timeout: false}, KindTransient},
		{"unexpected eof", io.ErrUnexpectedEOF, KindTransient},
		{"http 400", &HTTPError{Status: 400}, KindPermanent},
		{"http 401", &HTTPError{Status: 401}, KindPermanent},
		{"http 408", &HTTPError{Status: 408}, KindTimeout},
		{"http 429", &HTTPError{Status: 429}, KindRateLimited},
		{"http 500", &HTTPError{Status: 500}, KindTransient},
		{"http 503", &HTTPError{Status: 503}, KindTransient},
		{"http 302", &HTTPError{Status: 302}, KindUnknown},
		{"tagged permanent", Permanent(errors.New("bad input")), KindPermanent},
		{"tagged transient", Transient(errors.New("blip")), KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Errorf("Classify(%v).Kind = %v, want %v", tt.err, got.Kind, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	err := &HTTPError{Status: 503, Message: "unavailable"}

	first := Classify(err)
	for i := 0; i < 10; i++ {
		if got := Classify(err); got != first {
			t.Fatalf("Classify() = %+v on iteration %d, want %+v", got, i, first)
		}
	}
}

func TestClassify_WrappedError(t *testing.T) {
	inner := Permanent(errors.New("invalid payload"))
	wrapped := fmt.Errorf("calling upstream: %w", inner)

	if got := Classify(wrapped).Kind; got != KindPermanent {
		t.Errorf("Classify(wrapped).Kind = %v, want permanent", got)
	}
}

func TestClassify_WrappedNetError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	wrapped := fmt.Errorf("fetch: %w", opErr)

	if got := Classify(wrapped).Kind; got != KindTransient {
		t.Errorf("Classify(wrapped OpError).Kind = %v, want transient", got)
	}
}

func TestClassify_RetryAfterHint(t *testing.T) {
	err := RateLimited(errors.New("quota exceeded"), 2*time.Second)

	c := Classify(err)
	if c.Kind != KindRateLimited {
		t.Fatalf("Kind = %v, want rate_limited", c.Kind)
	}
	if c.RetryAfter != 2*time.Second {
		t.Errorf("RetryAfter = %v, want 2s", c.RetryAfter)
	}
}

func TestClassify_HTTPRetryAfter(t *testing.T) {
	err := &HTTPError{Status: 429, RetryAfter: 500 * time.Millisecond}

	c := Classify(err)
	if c.Kind != KindRateLimited {
		t.Fatalf("Kind = %v, want rate_limited", c.Kind)
	}
	if c.RetryAfter != 500*time.Millisecond {
		t.Errorf("RetryAfter = %v, want 500ms", c.RetryAfter)
	}

	// Hint on a non-rate-limit status is ignored.
	c = Classify(&HTTPError{Status: 500, RetryAfter: time.Second})
	if c.RetryAfter != 0 {
		t.Errorf("RetryAfter = %v for 500 status, want 0", c.RetryAfter)
	}
}

func TestTags_NilError(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
	if Transient(nil) != nil {
		t.Error("Transient(nil) should be nil")
	}
	if RateLimited(nil, time.Second) != nil {
		t.Error("RateLimited(nil) should be nil")
	}
}

func TestTags_PreserveMessage(t *testing.T) {
	err := Permanent(errors.New("bad input"))
	if err.Error() != "bad input" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad input")
	}

	var target error = errors.New("bad input")
	if !errors.Is(Permanent(target), target) {
		t.Error("tagged error should unwrap to its cause")
	}
}

func TestFailureKind_String(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want string
	}{
		{KindTransient, "transient"},
		{KindRateLimited, "rate_limited"},
		{KindTimeout, "timeout"},
		{KindPermanent, "permanent"},
		{KindUnknown, "unknown"},
		{FailureKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestFailureKind_Retryable(t *testing.T) {
	retryable := []FailureKind{KindTransient, KindRateLimited, KindTimeout}
	for _, k := range retryable {
		if !k.Retryable() {
			t.Errorf("%v.Retryable() = false, want true", k)
		}
	}

	for _, k := range []FailureKind{KindPermanent, KindUnknown} {
		if k.Retryable() {
			t.Errorf("%v.Retryable() = true, want false", k)
		}
	}
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{Status: 503}
	if err.Error() != "http status 503" {
		t.Errorf("Error() = %q", err.Error())
	}

	err = &HTTPError{Status: 400, Message: "missing field"}
	if err.Error() != "http status 400: missing field" {
		t.Errorf("Error() = %q", err.Error())
	}
}
