// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"slices"

	"code.hybscloud.com/iox"
)

// Completion is one value emitted by [FromFuturesIndexed].
// Slot is the unit's relative index at completion time: its position among
// the units that were still pending, in declaration order.
type Completion[A any] struct {
	Slot  int
	Value A
}

// FromFutures emits the value of every future exactly once, in the order
// the futures complete rather than the order they are given.
//
// The first rejection, in completion order, fails the stream with its
// error; the remaining futures are abandoned.
func FromFutures[A any](futures ...*Future[A]) AsyncStream[A] {
	return AsyncMap(FromFuturesIndexed(futures...), func(c Completion[A]) A {
		return c.Value
	})
}

// FromFuturesIndexed is [FromFutures] with every value tagged by the slot
// its future held among the pending futures when it completed.
//
// Each session keeps its own relative-index table. On every pull it races
// the pending futures: all of them are polled, and among those that have
// settled the one with the earliest completion stamp wins. The winner's
// relative index is emitted with its value, every pending future with a
// greater relative index moves down by one, and the winner leaves the
// pending set.
func FromFuturesIndexed[A any](futures ...*Future[A]) AsyncStream[Completion[A]] {
	return func() AsyncSession[Completion[A]] {
		m := &merge[A]{pending: make([]*pendingUnit[A], len(futures))}
		for i, f := range futures {
			m.pending[i] = &pendingUnit[A]{future: f, rel: i}
		}
		return m
	}
}

// pendingUnit is a future still waiting in a merge, with its relative index.
type pendingUnit[A any] struct {
	future *Future[A]
	rel    int
}

type merge[A any] struct {
	pending []*pendingUnit[A]
	st      finished
}

// Poll implements [AsyncSession].
func (m *merge[A]) Poll() (Completion[A], bool, error) {
	var zero Completion[A]
	if done, err := m.st.report(); done {
		return zero, false, err
	}
	if len(m.pending) == 0 {
		m.st.finish(nil)
		return zero, false, nil
	}

	winner := -1
	var first uint64
	for i, u := range m.pending {
		stamp, ok := u.future.Stamp()
		if !ok {
			continue
		}
		if winner < 0 || stamp < first {
			winner, first = i, stamp
		}
	}
	if winner < 0 {
		return zero, false, iox.ErrWouldBlock
	}

	u := m.pending[winner]
	v, err := u.future.Poll()
	if err != nil {
		m.pending = nil
		m.st.finish(err)
		return zero, false, err
	}
	for _, other := range m.pending {
		if other.rel > u.rel {
			other.rel--
		}
	}
	m.pending = slices.Delete(m.pending, winner, winner+1)
	return Completion[A]{Slot: u.rel, Value: v}, true, nil
}

// FromFuturesSeq emits the value of every future in the order the futures
// are given, regardless of the order they complete in. A rejection fails
// the stream when its turn comes.
func FromFuturesSeq[A any](futures ...*Future[A]) AsyncStream[A] {
	return func() AsyncSession[A] {
		next := 0
		var st finished
		return PollFunc[A](func() (A, bool, error) {
			var zero A
			if done, err := st.report(); done {
				return zero, false, err
			}
			if next >= len(futures) {
				st.finish(nil)
				return zero, false, nil
			}
			v, err := futures[next].Poll()
			if iox.IsWouldBlock(err) {
				return zero, false, err
			}
			if err != nil {
				st.finish(err)
				return zero, false, err
			}
			next++
			return v, true, nil
		})
	}
}
