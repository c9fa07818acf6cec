package rod_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/elliotttmiller/seatsync/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Do(t *testing.T) {
	t.Parallel()

	t.Run("runs the function and returns its error", func(t *testing.T) {
		t.Parallel()

		pool := rod.NewPool(2)
		defer pool.Close()

		require.NoError(t, pool.Do(context.Background(), func() error { return nil }))

		want := errors.New("boom")
		assert.Equal(t, want, pool.Do(context.Background(), func() error { return want }))
	})

	t.Run("bounds concurrent work to pool size", func(t *testing.T) {
		t.Parallel()

		pool := rod.NewPool(2)
		defer pool.Close()

		var inFlight, highWater atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = pool.Do(context.Background(), func() error {
					n := inFlight.Add(1)
					for {
						hw := highWater.Load()
						if n <= hw || highWater.CompareAndSwap(hw, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					inFlight.Add(-1)
					return nil
				})
			}()
		}
		wg.Wait()

		assert.LessOrEqual(t, highWater.Load(), int64(2))
	})

	t.Run("abandons the job at context expiry", func(t *testing.T) {
		t.Parallel()

		pool := rod.NewPool(1)

		release := make(chan struct{})
		go func() {
			_ = pool.Do(context.Background(), func() error {
				<-release
				return nil
			})
		}()
		time.Sleep(10 * time.Millisecond)

		// The single worker is occupied, so this job cannot be
		// submitted before the context expires.
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := pool.Do(ctx, func() error { return nil })
		require.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		pool.Close()
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		pool := rod.NewPool(1)
		pool.Close()
		pool.Close()
	})
}
