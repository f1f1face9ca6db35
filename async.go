// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"iter"

	"code.hybscloud.com/iox"
)

// AsyncSession is a stateful cursor over an [AsyncStream].
//
// Poll is the single pull operation and never blocks:
//   - (v, true, nil): the next element.
//   - (zero, false, nil): the session is finished. Polling again reports finished again.
//   - (zero, false, iox.ErrWouldBlock): the pull is outstanding. The next Poll
//     continues the same pull; it does not start another one.
//   - (zero, false, err): the pull failed. Built-in sessions report the same
//     error on every later Poll.
//
// Pulls on one session are strictly sequential. A session is owned by the
// goroutine that polls it.
type AsyncSession[A any] interface {
	Poll() (A, bool, error)
}

// AsyncStream is a lazy sequence whose pulls may suspend.
// Invoking it performs no work; each invocation returns a fresh session.
type AsyncStream[A any] func() AsyncSession[A]

// PollFunc adapts a non-blocking poll function to [AsyncSession].
type PollFunc[A any] func() (A, bool, error)

// Poll implements [AsyncSession].
func (f PollFunc[A]) Poll() (A, bool, error) {
	return f()
}

// FromFunc returns a stream whose sessions are built by newPoll.
// newPoll is called once per invocation of the stream.
func FromFunc[A any](newPoll func() PollFunc[A]) AsyncStream[A] {
	return func() AsyncSession[A] {
		return newPoll()
	}
}

// finished is the terminal state shared by built-in sessions:
// either exhausted (err == nil) or failed (err != nil).
type finished struct {
	done bool
	err  error
}

func (f *finished) finish(err error) {
	f.done = true
	f.err = err
}

func (f *finished) report() (bool, error) {
	return f.done, f.err
}

// AsyncEmpty returns a stream that finishes on the first pull.
func AsyncEmpty[A any]() AsyncStream[A] {
	return func() AsyncSession[A] {
		return PollFunc[A](func() (A, bool, error) {
			var zero A
			return zero, false, nil
		})
	}
}

// Never returns a stream whose first pull never resolves.
// Blocking drivers ([Next], [Collect], [ForEach]) release it when their
// context is done.
func Never[A any]() AsyncStream[A] {
	return func() AsyncSession[A] {
		return PollFunc[A](func() (A, bool, error) {
			var zero A
			return zero, false, iox.ErrWouldBlock
		})
	}
}

// AsyncOf returns a stream of the given elements.
func AsyncOf[A any](elems ...A) AsyncStream[A] {
	return AsyncFromSlice(elems)
}

// AsyncFromSlice returns a stream over s. Every pull resolves immediately.
func AsyncFromSlice[A any](s []A) AsyncStream[A] {
	return func() AsyncSession[A] {
		i := 0
		return PollFunc[A](func() (A, bool, error) {
			if i >= len(s) {
				var zero A
				return zero, false, nil
			}
			v := s[i]
			i++
			return v, true, nil
		})
	}
}

// AsyncFromSeq lifts a synchronous sequence. Each invocation starts a fresh
// traversal of seq. The underlying pull coroutine is released once seq is
// exhausted.
func AsyncFromSeq[A any](seq iter.Seq[A]) AsyncStream[A] {
	return func() AsyncSession[A] {
		s := Pull(seq)
		return PollFunc[A](func() (A, bool, error) {
			v, ok := s.Next()
			if !ok {
				s.Stop()
			}
			return v, ok, nil
		})
	}
}

// FromFuture returns a single-element stream that awaits f.
// A rejected future fails the pull with its error.
func FromFuture[A any](f *Future[A]) AsyncStream[A] {
	return func() AsyncSession[A] {
		var st finished
		return PollFunc[A](func() (A, bool, error) {
			var zero A
			if done, err := st.report(); done {
				return zero, false, err
			}
			v, err := f.Poll()
			if iox.IsWouldBlock(err) {
				return zero, false, err
			}
			if err != nil {
				st.finish(err)
				return zero, false, err
			}
			st.finish(nil)
			return v, true, nil
		})
	}
}

// FromTask runs task on first pull and emits its single result.
// Each invocation of the stream runs task again.
func FromTask[A any](task func() (A, error)) AsyncStream[A] {
	return func() AsyncSession[A] {
		var inner AsyncSession[A]
		return PollFunc[A](func() (A, bool, error) {
			if inner == nil {
				inner = FromFuture(Go(task))()
			}
			return inner.Poll()
		})
	}
}
