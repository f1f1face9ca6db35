// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"iter"
	"runtime"

	"code.hybscloud.com/kont"
	"github.com/go-softwarelab/common/pkg/optional"
	"github.com/go-softwarelab/common/pkg/seq"
)

// Session is a pull cursor over a synchronous sequence.
type Session[A any] struct {
	next func() (A, bool)
	stop func()
}

// Pull starts a session over s. Sessions hold a coroutine until they
// are exhausted or stopped. A session that becomes unreachable without
// being stopped is stopped by the garbage collector.
func Pull[A any](s iter.Seq[A]) *Session[A] {
	next, stop := iter.Pull(s)
	sess := &Session[A]{next: next, stop: stop}
	runtime.AddCleanup(sess, func(stop func()) { stop() }, stop)
	return sess
}

// Next pulls the next element. After the session is finished it keeps
// returning (zero, false).
func (s *Session[A]) Next() (A, bool) {
	return s.next()
}

// Stop releases the session. Stop is idempotent.
func (s *Session[A]) Stop() {
	s.stop()
}

// Of returns a sequence of the given elements.
func Of[A any](elems ...A) iter.Seq[A] {
	return seq.Of(elems...)
}

// FromSlice returns a sequence over s.
func FromSlice[A any](s []A) iter.Seq[A] {
	return seq.FromSlice(s)
}

// Empty returns a sequence with no elements.
func Empty[A any]() iter.Seq[A] {
	return seq.Empty[A]()
}

// ToSlice drains s into a new slice.
func ToSlice[A any](s iter.Seq[A]) []A {
	return seq.Collect(s)
}

// Map applies f to every element of s.
func Map[A, B any](s iter.Seq[A], f func(A) B) iter.Seq[B] {
	return seq.Map(s, f)
}

// Chain replaces every element of s with the sequence f returns for it.
func Chain[A, B any](s iter.Seq[A], f func(A) iter.Seq[B]) iter.Seq[B] {
	return seq.FlatMap(s, f)
}

// ChainWithIndex is [Chain] with the element's position passed to f.
func ChainWithIndex[A, B any](s iter.Seq[A], f func(int, A) iter.Seq[B]) iter.Seq[B] {
	return func(yield func(B) bool) {
		i := 0
		for a := range s {
			for b := range f(i, a) {
				if !yield(b) {
					return
				}
			}
			i++
		}
	}
}

// FilterMap applies f to every element and keeps the present results.
func FilterMap[A, B any](s iter.Seq[A], f func(A) optional.Value[B]) iter.Seq[B] {
	return Compact(Map(s, f))
}

// Compact keeps the present values of s.
func Compact[A any](s iter.Seq[optional.Value[A]]) iter.Seq[A] {
	return func(yield func(A) bool) {
		for o := range s {
			if o.IsEmpty() {
				continue
			}
			if !yield(o.MustGet()) {
				return
			}
		}
	}
}

// Separate splits s into its Left and Right values.
// Both results replay s independently.
func Separate[L, R any](s iter.Seq[kont.Either[L, R]]) (iter.Seq[L], iter.Seq[R]) {
	lefts := func(yield func(L) bool) {
		for e := range s {
			if l, ok := e.GetLeft(); ok && !yield(l) {
				return
			}
		}
	}
	rights := func(yield func(R) bool) {
		for e := range s {
			if r, ok := e.GetRight(); ok && !yield(r) {
				return
			}
		}
	}
	return lefts, rights
}
