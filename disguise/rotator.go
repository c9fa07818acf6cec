// Package disguise provides the disguise rotator: uniform pseudo-random
// selection of browser fingerprint profiles from a fixed pool.
package disguise

import (
	"math/rand/v2"

	seatsync "github.com/elliotttmiller/seatsync"
)

// Ensure Rotator implements seatsync.DisguiseRotator at compile time.
var _ seatsync.DisguiseRotator = (*Rotator)(nil)

// Rotator draws a profile uniformly at random on every call. It is
// safe for concurrent use: the pool is read-only and math/rand/v2's
// global generator is goroutine-safe.
type Rotator struct {
	pool []*seatsync.DisguiseProfile
}

// NewRotator creates a Rotator over the given pool.
// A nil or empty pool falls back to DefaultPool.
func NewRotator(pool []*seatsync.DisguiseProfile) *Rotator {
	if len(pool) == 0 {
		pool = DefaultPool()
	}
	return &Rotator{pool: pool}
}

// Next returns a profile drawn uniformly at random from the pool.
// The returned profile is shared and must not be mutated.
func (r *Rotator) Next() *seatsync.DisguiseProfile {
	return r.pool[rand.IntN(len(r.pool))]
}

// Size returns the number of profiles in the pool.
func (r *Rotator) Size() int {
	return len(r.pool)
}
