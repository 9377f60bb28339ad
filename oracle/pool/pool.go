// Package pool implements the oracle's two-tier worker pool: a
// browser-context pool bounding how many pages are open concurrently,
// and a vision-batch pool bounding concurrent vision model calls
// separately, since the two resources (browser memory, model rate
// limits) scale independently.
package pool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent access to one resource tier via a weighted
// semaphore, so callers simply wrap work in Do and the pool handles
// admission and release.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

// New builds a Pool admitting at most size concurrent callers.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Do blocks until a slot is free (or ctx is done), runs fn, and always
// releases the slot afterward.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return fn(ctx)
}

// Size reports the pool's configured concurrency limit.
func (p *Pool) Size() int {
	return int(p.size)
}
