package health

import (
	"context"
	"testing"
	"time"

	"github.com/jonwraymond/callguard/resilience"
)

func BenchmarkBreakerChecker(b *testing.B) {
	registry := resilience.NewRegistry(resilience.BreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     time.Hour,
	})
	for _, name := range []string{"payments-api", "search-api", "inventory-api"} {
		registry.Get(name)
	}
	checker := NewBreakerChecker(registry)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		checker.Check(ctx)
	}
}

func BenchmarkAggregator_CheckAll(b *testing.B) {
	agg := NewAggregator()
	for _, name := range []string{"a", "b", "c", "d"} {
		agg.Register(name, staticChecker(Healthy("ok")))
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		agg.CheckAll(ctx)
	}
}
