// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// SinglePass is a stream bound to one session that already exists, such as
// the receiving end of a pipe or a channel. It is deliberately not an
// [AsyncStream]: re-invoking it cannot restart the traversal.
type SinglePass[A any] struct {
	sess AsyncSession[A]
}

// Once binds an existing session as a single-pass stream.
func Once[A any](s AsyncSession[A]) SinglePass[A] {
	return SinglePass[A]{sess: s}
}

// Session returns the underlying session.
func (p SinglePass[A]) Session() AsyncSession[A] {
	return p.sess
}

// Stream returns an AsyncStream whose every invocation returns the same
// underlying session, so each traversal continues from the current cursor.
func (p SinglePass[A]) Stream() AsyncStream[A] {
	return func() AsyncSession[A] {
		return p.sess
	}
}

// FromChan returns a single-pass stream over ch. Pulls never block: an
// empty channel suspends the pull, a closed and drained channel finishes it.
func FromChan[A any](ch <-chan A) SinglePass[A] {
	return Once[A](PollFunc[A](func() (A, bool, error) {
		select {
		case v, ok := <-ch:
			return v, ok, nil
		default:
			var zero A
			return zero, false, iox.ErrWouldBlock
		}
	}))
}

// pipeCapacity is the bounded capacity of a pipe's transport queue.
const pipeCapacity = 4

// pipe holds the lock-free transport shared by both ends.
// The queue is single-producer single-consumer.
type pipe[A any] struct {
	queue  lfq.SPSC[A]
	closed atomix.Uint32
	serial Serial
}

// Sender is the producing end of a pipe. It is owned by one goroutine.
type Sender[A any] struct {
	p *pipe[A]
}

// NewPipe creates a connected sender and single-pass receiving stream.
// Transport is a bounded lock-free SPSC queue and a shared atomic close flag.
//
// Both ends are non-blocking: Send returns iox.ErrWouldBlock when the queue
// is full, and a pull on the stream suspends while the queue is empty and
// the pipe is still open.
func NewPipe[A any]() (*Sender[A], SinglePass[A]) {
	p := &pipe[A]{serial: nextSerial()}
	p.queue.Init(pipeCapacity)
	return &Sender[A]{p: p}, Once[A](p)
}

// Serial returns the serial number assigned to this pipe.
func (s *Sender[A]) Serial() Serial {
	return s.p.serial
}

// Send enqueues v. Non-blocking: returns iox.ErrWouldBlock if the queue is
// full, and ErrClosed once the pipe is closed.
func (s *Sender[A]) Send(v A) error {
	if s.p.closed.Load() != 0 {
		return ErrClosed
	}
	return s.p.queue.Enqueue(&v)
}

// SendWait enqueues v, waiting past iox.ErrWouldBlock with adaptive backoff
// until there is room or ctx is done.
func (s *Sender[A]) SendWait(ctx context.Context, v A) error {
	var bo iox.Backoff
	for {
		err := s.Send(v)
		if !iox.IsWouldBlock(err) {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		bo.Wait()
	}
}

// Close marks the end of the stream. Values already sent are still
// delivered. Never blocks.
func (s *Sender[A]) Close() {
	s.p.closed.Add(1)
}

// Poll implements [AsyncSession] for the receiving end.
func (p *pipe[A]) Poll() (A, bool, error) {
	if v, err := p.queue.Dequeue(); err == nil {
		return v, true, nil
	}
	if p.closed.Load() == 0 {
		var zero A
		return zero, false, iox.ErrWouldBlock
	}
	if v, err := p.queue.Dequeue(); err == nil {
		return v, true, nil
	}
	var zero A
	return zero, false, nil
}
