// Package simulate holds the artificial network behavior of the service:
// a uniform latency window applied to every request and per-route transient
// failure probabilities. Both are injected so tests can pin them to
// deterministic values.
package simulate

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Defaults match the simulated network the UI was built against.
const (
	DefaultLatencyMin         = 200 * time.Millisecond
	DefaultLatencyMax         = 1200 * time.Millisecond
	DefaultCreateFailureRate  = 0.08
	DefaultReorderFailureRate = 0.10
)

// Policy samples latency delays and failure draws from one seeded source.
// Safe for concurrent use.
type Policy struct {
	LatencyMin         time.Duration
	LatencyMax         time.Duration
	CreateFailureRate  float64
	ReorderFailureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Policy seeded from the wall clock.
func New(latencyMin, latencyMax time.Duration, createRate, reorderRate float64) *Policy {
	return NewSeeded(latencyMin, latencyMax, createRate, reorderRate, time.Now().UnixNano())
}

// NewSeeded builds a Policy with an explicit seed, for reproducible runs.
func NewSeeded(latencyMin, latencyMax time.Duration, createRate, reorderRate float64, seed int64) *Policy {
	return &Policy{
		LatencyMin:         latencyMin,
		LatencyMax:         latencyMax,
		CreateFailureRate:  createRate,
		ReorderFailureRate: reorderRate,
		rng:                rand.New(rand.NewSource(seed)),
	}
}

// Zero returns a Policy with no latency and no failures, for tests.
func Zero() *Policy {
	return NewSeeded(0, 0, 0, 0, 1)
}

// Wait suspends for a latency sampled uniformly from the configured window.
// The suspension is cooperative: it parks the goroutine without holding any
// lock, so other in-flight requests proceed. Returns early with the context
// error if the caller goes away.
func (p *Policy) Wait(ctx context.Context) error {
	d := p.sampleLatency()
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShouldFail draws once against probability rate. Rates clamped at 0 and 1
// short-circuit without consuming randomness, so tests stay deterministic.
func (p *Policy) ShouldFail(rate float64) bool {
	if rate <= 0 {
		return false
	}
	if rate >= 1 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64() < rate
}

func (p *Policy) sampleLatency() time.Duration {
	if p.LatencyMax <= 0 {
		return 0
	}
	if p.LatencyMax <= p.LatencyMin {
		return p.LatencyMin
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.LatencyMin + time.Duration(p.rng.Int63n(int64(p.LatencyMax-p.LatencyMin)))
}
