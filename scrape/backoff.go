// Package scrape provides the scraping orchestration core: the
// per-source retrieval state machine, challenge detection, backoff,
// normalization, and the concurrency orchestrator that fans work out
// across marketplaces and joins the results.
package scrape

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff defaults.
const (
	DefaultInitialWait = 8 * time.Second
	DefaultMaxWait     = 30 * time.Second
	DefaultFactor      = 1.5
	DefaultJitter      = 0.2
	DefaultMaxAttempts = 5
)

// Backoff computes retry waits with exponential growth, a ceiling, and
// symmetric jitter. The zero value uses the defaults.
type Backoff struct {
	Initial time.Duration
	Factor  float64
	Max     time.Duration
	Jitter  float64
}

// Delay returns the base wait for attempt i (0-indexed), before jitter:
// min(Max, Initial × Factor^i).
func (b Backoff) Delay(attempt int) time.Duration {
	initial := b.Initial
	if initial <= 0 {
		initial = DefaultInitialWait
	}
	factor := b.Factor
	if factor <= 0 {
		factor = DefaultFactor
	}
	max := b.Max
	if max <= 0 {
		max = DefaultMaxWait
	}
	d := float64(initial) * math.Pow(factor, float64(attempt))
	if d > float64(max) {
		return max
	}
	return time.Duration(d)
}

// jittered applies symmetric ±Jitter to a base delay. A zero Jitter
// uses the default; a negative Jitter disables jitter entirely (useful
// in tests).
func (b Backoff) jittered(d time.Duration) time.Duration {
	jitter := b.Jitter
	if jitter == 0 {
		jitter = DefaultJitter
	}
	if jitter < 0 {
		return d
	}
	delta := (rand.Float64()*2 - 1) * jitter * float64(d)
	return time.Duration(float64(d) + delta)
}

// Sleep waits the jittered delay for the attempt, returning early with
// the context's error if it is canceled first. The returned duration
// is the wait that was applied, for observability.
func (b Backoff) Sleep(ctx context.Context, attempt int) (time.Duration, error) {
	d := b.jittered(b.Delay(attempt))
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(d):
		return d, nil
	}
}
