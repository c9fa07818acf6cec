package rod

import (
	"context"
	"sync"
)

// DefaultPoolSize matches the orchestrator's default concurrency cap.
const DefaultPoolSize = 4

// Pool is the execution isolation boundary for browser work. The
// browser strategy manages its own blocking subprocess I/O, so every
// call into it crosses this fixed set of dedicated worker goroutines
// instead of running on the caller's goroutine. The pool size also
// caps concurrent browser sessions regardless of the orchestrator's
// own limit.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
	once sync.Once
}

type job struct {
	fn   func() error
	done chan error
}

// NewPool starts a pool with the given number of workers.
// Sizes below 1 use DefaultPoolSize.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	p := &Pool{jobs: make(chan job)}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j.done <- j.fn()
			}
		}()
	}
	return p
}

// Do runs fn on a pool worker and waits for completion or context
// expiry. On expiry the job is abandoned, not interrupted: fn must
// observe the context itself. The reply channel is buffered so an
// abandoned worker never blocks delivering its result.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	j := job{fn: fn, done: make(chan error, 1)}
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.jobs) })
	p.wg.Wait()
}
