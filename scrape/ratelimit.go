package scrape

import (
	"context"
	"sync"

	seatsync "github.com/elliotttmiller/seatsync"
	"golang.org/x/time/rate"
)

// SourceLimiter provides per-marketplace request pacing using token
// buckets. Each source gets its own limiter with a burst of 1, so
// concurrent scrapers of different marketplaces never throttle each
// other while retries against one marketplace stay paced.
type SourceLimiter struct {
	mu       sync.Mutex
	limiters map[seatsync.Source]*rate.Limiter
	rps      float64
}

// NewSourceLimiter creates a SourceLimiter with the specified requests
// per second limit per source.
func NewSourceLimiter(rps float64) *SourceLimiter {
	return &SourceLimiter{
		limiters: make(map[seatsync.Source]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the source.
// Returns an error if the context is canceled before the wait completes.
func (l *SourceLimiter) Wait(ctx context.Context, src seatsync.Source) error {
	l.mu.Lock()
	limiter, ok := l.limiters[src]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[src] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
