// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"iter"

	"code.hybscloud.com/iox"
)

// TraverseWithIndex maps every seed to a source with g and polls the
// sources in rounds.
//
// Each round starts the next pull on every active source before any of them
// is awaited, so their suspensions overlap. Once every pull of the round has
// resolved, sources that finished are retired for good and the values of
// the others are emitted as one row, in the order the sources were declared.
// The stream finishes after a round that collects no value. Row lengths
// therefore shrink monotonically; there are max(len) rows holding sum(len)
// values in total.
//
// With no seeds the stream emits a single empty row.
//
// The first failing pull fails the stream. Pulls of sibling sources already
// started in that round are abandoned, not cancelled.
func TraverseWithIndex[A, B any](as []A, g func(int, A) AsyncStream[B]) AsyncStream[[]B] {
	return func() AsyncSession[[]B] {
		return &rounds[A, B]{seeds: as, g: g, overlap: true}
	}
}

// Traverse is [TraverseWithIndex] with a mapper that ignores the index.
func Traverse[A, B any](as []A, g func(A) AsyncStream[B]) AsyncStream[[]B] {
	return TraverseWithIndex(as, func(_ int, a A) AsyncStream[B] { return g(a) })
}

// Sequence polls already-built streams in rounds, as [TraverseWithIndex].
func Sequence[A any](streams []AsyncStream[A]) AsyncStream[[]A] {
	return Traverse(streams, identity[AsyncStream[A]])
}

// TraverseWithIndexSeq is the sequential discipline of [TraverseWithIndex]:
// rows have the same shape, but within a round each source is pulled only
// after the previous source's pull has resolved.
func TraverseWithIndexSeq[A, B any](as []A, g func(int, A) AsyncStream[B]) AsyncStream[[]B] {
	return func() AsyncSession[[]B] {
		return &rounds[A, B]{seeds: as, g: g}
	}
}

// TraverseSeq is [TraverseWithIndexSeq] with a mapper that ignores the index.
func TraverseSeq[A, B any](as []A, g func(A) AsyncStream[B]) AsyncStream[[]B] {
	return TraverseWithIndexSeq(as, func(_ int, a A) AsyncStream[B] { return g(a) })
}

// SequenceSeq polls already-built streams in sequential rounds.
func SequenceSeq[A any](streams []AsyncStream[A]) AsyncStream[[]A] {
	return TraverseSeq(streams, identity[AsyncStream[A]])
}

func identity[A any](a A) A { return a }

// source is one polled stream. Within a round, resolved marks that the
// round's pull has completed and done that it completed with "finished".
type source[B any] struct {
	sess     AsyncSession[B]
	value    B
	resolved bool
	done     bool
}

type rounds[A, B any] struct {
	seeds   []A
	g       func(int, A) AsyncStream[B]
	overlap bool
	active  []*source[B]
	started bool
	st      finished
}

// Poll implements [AsyncSession].
func (r *rounds[A, B]) Poll() ([]B, bool, error) {
	if done, err := r.st.report(); done {
		return nil, false, err
	}
	if !r.started {
		r.started = true
		if len(r.seeds) == 0 {
			r.st.finish(nil)
			return []B{}, true, nil
		}
		r.active = make([]*source[B], len(r.seeds))
		for i, a := range r.seeds {
			r.active[i] = &source[B]{sess: r.g(i, a)()}
		}
	}

	pending := false
	for _, s := range r.active {
		if s.resolved {
			continue
		}
		v, ok, err := s.sess.Poll()
		if iox.IsWouldBlock(err) {
			if !r.overlap {
				return nil, false, err
			}
			pending = true
			continue
		}
		if err != nil {
			r.active = nil
			r.st.finish(err)
			return nil, false, err
		}
		s.value, s.resolved, s.done = v, true, !ok
	}
	if pending {
		return nil, false, iox.ErrWouldBlock
	}

	row := make([]B, 0, len(r.active))
	survivors := r.active[:0]
	for _, s := range r.active {
		if s.done {
			continue
		}
		row = append(row, s.value)
		var zero B
		s.value, s.resolved = zero, false
		survivors = append(survivors, s)
	}
	clear(r.active[len(survivors):])
	r.active = survivors

	if len(row) == 0 {
		r.st.finish(nil)
		return nil, false, nil
	}
	return row, true, nil
}

// SequenceSeqs is the synchronous counterpart of [Sequence]: every row
// holds the next element of each source that is not yet exhausted, in
// declaration order. With no sources it yields a single empty row.
func SequenceSeqs[A any](seqs []iter.Seq[A]) iter.Seq[[]A] {
	return TraverseSeqs(seqs, func(_ int, s iter.Seq[A]) iter.Seq[A] { return s })
}

// TraverseSeqs maps every seed to a synchronous source with g and
// yields rows as [SequenceSeqs].
func TraverseSeqs[A, B any](as []A, g func(int, A) iter.Seq[B]) iter.Seq[[]B] {
	return func(yield func([]B) bool) {
		if len(as) == 0 {
			yield([]B{})
			return
		}
		active := make([]*Session[B], len(as))
		for i, a := range as {
			active[i] = Pull(g(i, a))
		}
		defer func() {
			for _, s := range active {
				s.Stop()
			}
		}()
		for {
			row := make([]B, 0, len(active))
			survivors := active[:0]
			for _, s := range active {
				v, ok := s.Next()
				if !ok {
					s.Stop()
					continue
				}
				row = append(row, v)
				survivors = append(survivors, s)
			}
			clear(active[len(survivors):])
			active = survivors
			if len(row) == 0 || !yield(row) {
				return
			}
		}
	}
}
