// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"github.com/go-softwarelab/common/pkg/optional"
)

// AsyncMap applies f to every element of s.
func AsyncMap[A, B any](s AsyncStream[A], f func(A) B) AsyncStream[B] {
	return AsyncMapWithIndex(s, func(_ int, a A) B { return f(a) })
}

// AsyncMapWithIndex applies f to every element of s and its position.
func AsyncMapWithIndex[A, B any](s AsyncStream[A], f func(int, A) B) AsyncStream[B] {
	return func() AsyncSession[B] {
		src := s()
		i := 0
		return PollFunc[B](func() (B, bool, error) {
			a, ok, err := src.Poll()
			if err != nil || !ok {
				var zero B
				return zero, false, err
			}
			b := f(i, a)
			i++
			return b, true, nil
		})
	}
}

// AsyncChain replaces every element of s with the stream f returns for it.
func AsyncChain[A, B any](s AsyncStream[A], f func(A) AsyncStream[B]) AsyncStream[B] {
	return AsyncChainWithIndex(s, func(_ int, a A) AsyncStream[B] { return f(a) })
}

// AsyncChainWithIndex is [AsyncChain] with the element's position passed to f.
func AsyncChainWithIndex[A, B any](s AsyncStream[A], f func(int, A) AsyncStream[B]) AsyncStream[B] {
	return func() AsyncSession[B] {
		return &chained[A, B]{outer: s(), f: f}
	}
}

type chained[A, B any] struct {
	outer AsyncSession[A]
	inner AsyncSession[B]
	f     func(int, A) AsyncStream[B]
	index int
	st    finished
}

// Poll implements [AsyncSession].
func (c *chained[A, B]) Poll() (B, bool, error) {
	var zero B
	if done, err := c.st.report(); done {
		return zero, false, err
	}
	for {
		if c.inner == nil {
			a, ok, err := c.outer.Poll()
			if iox.IsWouldBlock(err) {
				return zero, false, err
			}
			if err != nil || !ok {
				c.st.finish(err)
				return zero, false, err
			}
			c.inner = c.f(c.index, a)()
			c.index++
		}
		b, ok, err := c.inner.Poll()
		if iox.IsWouldBlock(err) {
			return zero, false, err
		}
		if err != nil {
			c.st.finish(err)
			return zero, false, err
		}
		if !ok {
			c.inner = nil
			continue
		}
		return b, true, nil
	}
}

// AsyncFilterMap applies f to every element and keeps the present results.
func AsyncFilterMap[A, B any](s AsyncStream[A], f func(A) optional.Value[B]) AsyncStream[B] {
	return AsyncCompact(AsyncMap(s, f))
}

// AsyncCompact keeps the present values of s.
func AsyncCompact[A any](s AsyncStream[optional.Value[A]]) AsyncStream[A] {
	return func() AsyncSession[A] {
		src := s()
		return PollFunc[A](func() (A, bool, error) {
			for {
				o, ok, err := src.Poll()
				if err != nil || !ok {
					var zero A
					return zero, false, err
				}
				if o.IsPresent() {
					return o.MustGet(), true, nil
				}
			}
		})
	}
}

// AsyncSeparate splits s into its Left and Right values.
// Each result invokes s on its own.
func AsyncSeparate[L, R any](s AsyncStream[kont.Either[L, R]]) (AsyncStream[L], AsyncStream[R]) {
	lefts := AsyncFilterMap(s, func(e kont.Either[L, R]) optional.Value[L] {
		if l, ok := e.GetLeft(); ok {
			return optional.Some(l)
		}
		return optional.None[L]()
	})
	rights := AsyncFilterMap(s, func(e kont.Either[L, R]) optional.Value[R] {
		if r, ok := e.GetRight(); ok {
			return optional.Some(r)
		}
		return optional.None[R]()
	})
	return lefts, rights
}

// MapAwait starts f for every element of s, one at a time, and emits the
// value each future resolves to. The next element is not pulled before the
// current future settles. A rejection fails the stream.
func MapAwait[A, B any](s AsyncStream[A], f func(A) *Future[B]) AsyncStream[B] {
	return func() AsyncSession[B] {
		src := s()
		var inflight *Future[B]
		var st finished
		return PollFunc[B](func() (B, bool, error) {
			var zero B
			if done, err := st.report(); done {
				return zero, false, err
			}
			if inflight == nil {
				a, ok, err := src.Poll()
				if iox.IsWouldBlock(err) {
					return zero, false, err
				}
				if err != nil || !ok {
					st.finish(err)
					return zero, false, err
				}
				inflight = f(a)
			}
			b, err := inflight.Poll()
			if iox.IsWouldBlock(err) {
				return zero, false, err
			}
			inflight = nil
			if err != nil {
				st.finish(err)
				return zero, false, err
			}
			return b, true, nil
		})
	}
}

// Wither keeps the present values produced by the asynchronous filter f.
func Wither[A, B any](s AsyncStream[A], f func(A) *Future[optional.Value[B]]) AsyncStream[B] {
	return AsyncCompact(MapAwait(s, f))
}

// Wilt partitions s with the asynchronous classifier f. Each result invokes
// s, and runs f, on its own.
func Wilt[A, L, R any](s AsyncStream[A], f func(A) *Future[kont.Either[L, R]]) (AsyncStream[L], AsyncStream[R]) {
	return AsyncSeparate(MapAwait(s, f))
}
