package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/callguard/classify"
)

// BenchmarkExecutor_Success measures happy path execution.
func BenchmarkExecutor_Success(b *testing.B) {
	ex := NewExecutor("bench")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ex.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkExecutor_NonRetryable measures the fail-fast path.
func BenchmarkExecutor_NonRetryable(b *testing.B) {
	ex := NewExecutor("bench", WithBreaker(NewBreaker("bench", BreakerConfig{
		FailureThreshold: 1 << 30,
	})))
	ctx := context.Background()
	failure := classify.Permanent(errors.New("bad input"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ex.Execute(ctx, func(ctx context.Context) error {
			return failure
		})
	}
}

// BenchmarkBreaker_Allow measures breaker consultation overhead.
func BenchmarkBreaker_Allow(b *testing.B) {
	br := NewBreaker("bench", BreakerConfig{
		FailureThreshold: 100,
		ResetTimeout:     time.Minute,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = br.Allow()
		br.RecordSuccess()
	}
}

// BenchmarkBreaker_Concurrent measures contention on one breaker.
func BenchmarkBreaker_Concurrent(b *testing.B) {
	br := NewBreaker("bench", BreakerConfig{
		FailureThreshold: 1 << 30,
		ResetTimeout:     time.Minute,
	})

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if br.Allow() == nil {
				br.RecordSuccess()
			}
		}
	})
}

// BenchmarkRegistry_Get measures lookup of an existing breaker.
func BenchmarkRegistry_Get(b *testing.B) {
	reg := NewRegistry(BreakerConfig{})
	reg.Get("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = reg.Get("bench")
	}
}

// BenchmarkPolicy_Delay measures backoff computation.
func BenchmarkPolicy_Delay(b *testing.B) {
	p := DefaultPolicy().normalized()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Delay(3, 0)
	}
}

// BenchmarkClassify measures classification of a tagged error.
func BenchmarkClassify(b *testing.B) {
	err := classify.Transient(errors.New("blip"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = classify.Classify(err)
	}
}
