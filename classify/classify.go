package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"
)

// HTTPError reports a failed call to an HTTP-speaking dependency.
// Callers construct one from the response so Classify can use the
// status code.
type HTTPError struct {
	// Status is the HTTP status code.
	Status int

	// Message is an optional short description, typically the status
	// text or a snippet of the response body.
	Message string

	// RetryAfter is the parsed Retry-After value, if the response
	// carried one.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return fmt.Sprintf("http status %d: %s", e.Status, e.Message)
}

// taggedError carries an explicit classification attached by the
// operation itself.
type taggedError struct {
	kind       FailureKind
	retryAfter time.Duration
	err        error
}

func (e *taggedError) Error() string { return e.err.Error() }
func (e *taggedError) Unwrap() error { return e.err }

// Permanent tags err as a permanent failure. Returns nil if err is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &taggedError{kind: KindPermanent, err: err}
}

// Transient tags err as a transient failure. Returns nil if err is nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &taggedError{kind: KindTransient, err: err}
}

// RateLimited tags err as a rate-limit failure with an optional
// retry-after hint. Returns nil if err is nil.
func RateLimited(err error, retryAfter time.Duration) error {
	if err == nil {
		return nil
	}
	return &taggedError{kind: KindRateLimited, retryAfter: retryAfter, err: err}
}

// Classify maps an error to a Classification.
//
// Rules are applied in priority order: explicit tag, rate-limit
// signal, deadline expiry, connectivity/5xx, validation/4xx, then
// KindUnknown. Classify is deterministic, never panics, and returns
// KindUnknown for a nil error.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Kind: KindUnknown}
	}

	// Explicit tag from the operation wins.
	var tagged *taggedError
	if errors.As(err, &tagged) {
		return Classification{Kind: tagged.kind, RetryAfter: tagged.retryAfter}
	}

	// HTTP status, when the operation reported one.
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		c := Classification{Kind: StatusKind(httpErr.Status)}
		if c.Kind == KindRateLimited {
			c.RetryAfter = httpErr.RetryAfter
		}
		return c
	}

	// Deadline expiry. Caller-initiated cancellation is not a
	// dependency failure; it degrades to KindUnknown and the executor
	// surfaces it as Cancelled before classification matters.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return Classification{Kind: KindTimeout}
	}
	if errors.Is(err, context.Canceled) {
		return Classification{Kind: KindUnknown}
	}

	// Connectivity-class syscall errors.
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return Classification{Kind: KindTransient}
	}

	// Network errors: timeouts are timeouts, the rest of the dial/read
	// failures are transient connectivity problems.
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return Classification{Kind: KindTimeout}
		}
		return Classification{Kind: KindTransient}
	}

	// A stream that ended mid-response is worth retrying.
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Classification{Kind: KindTransient}
	}

	return Classification{Kind: KindUnknown}
}

// StatusKind maps an HTTP status code to a FailureKind.
//
// 429 is rate-limited, 408 is a timeout, remaining 4xx are permanent,
// 5xx are transient. Anything else is unknown.
func StatusKind(status int) FailureKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusRequestTimeout:
		return KindTimeout
	case status >= 400 && status < 500:
		return KindPermanent
	case status >= 500 && status < 600:
		return KindTransient
	default:
		return KindUnknown
	}
}
