// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"context"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"golang.org/x/sync/errgroup"
)

// completionCapacity is the bounded capacity of a future's completion queue.
// A future is settled at most once, so the queue never fills.
const completionCapacity = 4

// completions stamps every settlement with a global, monotonically
// increasing sequence number. Stamps order completions across futures.
var completions atomix.Uint64

// outcome is one settlement handed from the resolving goroutine to the consumer.
type outcome[A any] struct {
	value A
	err   error
	stamp uint64
}

// Future is a pending asynchronous unit that resolves exactly once.
//
// The settling side may run on any goroutine. The observing side (Poll,
// Await, Stamp) is single-consumer: a Future is observed from one goroutine
// at a time. Once observed, the outcome is cached and can be read any
// number of times.
type Future[A any] struct {
	queue   lfq.SPSC[outcome[A]]
	settled atomix.Uint32
	slot    outcome[A]
	ready   bool
}

func newFuture[A any]() *Future[A] {
	f := &Future[A]{}
	f.queue.Init(completionCapacity)
	return f
}

// Settle resolves a future. Only the first call has an effect; later calls
// return [ErrSettled].
type Settle[A any] func(value A, err error) error

// NewPromise returns a pending future and the function that settles it.
func NewPromise[A any]() (*Future[A], Settle[A]) {
	f := newFuture[A]()
	return f, f.settle
}

func (f *Future[A]) settle(value A, err error) error {
	if f.settled.Add(1) != 1 {
		return ErrSettled
	}
	o := outcome[A]{value: value, err: err, stamp: completions.Add(1)}
	if qerr := f.queue.Enqueue(&o); qerr != nil {
		panic("lazy: future completion queue rejected its only settlement")
	}
	return nil
}

// Go runs task on a new goroutine and returns its future.
func Go[A any](task func() (A, error)) *Future[A] {
	f := newFuture[A]()
	go func() {
		v, err := task()
		_ = f.settle(v, err)
	}()
	return f
}

// Resolved returns a future already resolved to v.
func Resolved[A any](v A) *Future[A] {
	f := newFuture[A]()
	_ = f.settle(v, nil)
	return f
}

// Failed returns a future already rejected with err.
func Failed[A any](err error) *Future[A] {
	f := newFuture[A]()
	var zero A
	_ = f.settle(zero, err)
	return f
}

// After returns a future that resolves to v once d has elapsed.
func After[A any](d time.Duration, v A) *Future[A] {
	f := newFuture[A]()
	time.AfterFunc(d, func() {
		_ = f.settle(v, nil)
	})
	return f
}

// Launch starts every task in one errgroup. The first task to fail cancels
// the context passed to its siblings; the futures themselves still settle
// individually with whatever their tasks return.
func Launch[A any](ctx context.Context, tasks ...func(context.Context) (A, error)) []*Future[A] {
	g, gctx := errgroup.WithContext(ctx)
	futures := make([]*Future[A], len(tasks))
	for i, task := range tasks {
		f := newFuture[A]()
		futures[i] = f
		g.Go(func() error {
			v, err := task(gctx)
			_ = f.settle(v, err)
			return err
		})
	}
	go func() {
		_ = g.Wait()
	}()
	return futures
}

// Poll reports the outcome without blocking.
// It returns iox.ErrWouldBlock while the future is pending.
func (f *Future[A]) Poll() (A, error) {
	if !f.ready {
		o, err := f.queue.Dequeue()
		if err != nil {
			var zero A
			return zero, iox.ErrWouldBlock
		}
		f.slot = o
		f.ready = true
	}
	return f.slot.value, f.slot.err
}

// Stamp returns the completion stamp of a resolved future.
// Smaller stamps completed earlier. It reports false while pending.
func (f *Future[A]) Stamp() (uint64, bool) {
	if _, err := f.Poll(); iox.IsWouldBlock(err) {
		return 0, false
	}
	return f.slot.stamp, true
}

// Await blocks until the future settles or ctx is done.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (f *Future[A]) Await(ctx context.Context) (A, error) {
	var bo iox.Backoff
	for {
		v, err := f.Poll()
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		if cerr := ctx.Err(); cerr != nil {
			var zero A
			return zero, cerr
		}
		bo.Wait()
	}
}
