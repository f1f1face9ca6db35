// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"iter"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Loop runs an iterative generator body.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// ExprLoop is [Loop] for Expr-world generator bodies.
// Steps that return without suspending are unrolled in place.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	m := step(initial)
	for {
		if _, ok := m.Frame.(kont.ReturnFrame); !ok {
			break
		}
		left, ok := m.Value.GetLeft()
		if !ok {
			right, _ := m.Value.GetRight()
			return kont.ExprReturn(right)
		}
		m = step(left)
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, A])
		if left, ok := e.GetLeft(); ok {
			next := ExprLoop(left, step)
			return kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
		}
		right, _ := e.GetRight()
		return kont.Expr[kont.Erased]{Value: kont.Erased(right), Frame: exprReturnFrame}
	}
	bf.Next = exprReturnFrame
	var zero A
	return kont.Expr[A]{Value: zero, Frame: kont.ChainFrames(m.Frame, bf)}
}

// ChainRecDepthFirst expands a from f and yields every reachable Right in
// pre-order: each Left seed is expanded in full before the rest of the
// sequence that produced it.
//
// Native call depth grows by one expansion frame per nested seed in
// progress, not with the number of items. Expansion must reach only finite
// branches; an infinite branch never terminates.
func ChainRecDepthFirst[A, B any](a A, f func(A) iter.Seq[kont.Either[A, B]]) iter.Seq[B] {
	return func(yield func(B) bool) {
		expandDepthFirst(a, f, yield)
	}
}

// expandDepthFirst reports false once yield has asked to stop.
func expandDepthFirst[A, B any](a A, f func(A) iter.Seq[kont.Either[A, B]], yield func(B) bool) bool {
	for e := range f(a) {
		if seed, ok := e.GetLeft(); ok {
			if !expandDepthFirst(seed, f, yield) {
				return false
			}
			continue
		}
		b, _ := e.GetRight()
		if !yield(b) {
			return false
		}
	}
	return true
}

// ChainRecBreadthFirst expands a from f and yields every reachable Right in
// level order: Rights are yielded as they appear, Left seeds are queued and
// expanded one after another once the current expansion is drained.
func ChainRecBreadthFirst[A, B any](a A, f func(A) iter.Seq[kont.Either[A, B]]) iter.Seq[B] {
	return func(yield func(B) bool) {
		var todo ring[A]
		todo.push(a)
		for todo.len() > 0 {
			seed, _ := todo.pop()
			for e := range f(seed) {
				if next, ok := e.GetLeft(); ok {
					todo.push(next)
					continue
				}
				b, _ := e.GetRight()
				if !yield(b) {
					return
				}
			}
		}
	}
}

// AsyncChainRecDepthFirst is the asynchronous [ChainRecDepthFirst].
// A failing expansion fails the session with its error.
func AsyncChainRecDepthFirst[A, B any](a A, f func(A) AsyncStream[kont.Either[A, B]]) AsyncStream[B] {
	return func() AsyncSession[B] {
		return &depthFirst[A, B]{seed: a, f: f}
	}
}

type depthFirst[A, B any] struct {
	seed    A
	f       func(A) AsyncStream[kont.Either[A, B]]
	stack   []AsyncSession[kont.Either[A, B]]
	started bool
	st      finished
}

// Poll implements [AsyncSession].
func (d *depthFirst[A, B]) Poll() (B, bool, error) {
	var zero B
	if done, err := d.st.report(); done {
		return zero, false, err
	}
	if !d.started {
		d.started = true
		d.stack = append(d.stack, d.f(d.seed)())
	}
	for len(d.stack) > 0 {
		top := d.stack[len(d.stack)-1]
		e, ok, err := top.Poll()
		if iox.IsWouldBlock(err) {
			return zero, false, err
		}
		if err != nil {
			d.stack = nil
			d.st.finish(err)
			return zero, false, err
		}
		if !ok {
			d.stack[len(d.stack)-1] = nil
			d.stack = d.stack[:len(d.stack)-1]
			continue
		}
		if seed, ok := e.GetLeft(); ok {
			d.stack = append(d.stack, d.f(seed)())
			continue
		}
		b, _ := e.GetRight()
		return b, true, nil
	}
	d.st.finish(nil)
	return zero, false, nil
}

// AsyncChainRecBreadthFirst is the asynchronous [ChainRecBreadthFirst].
// A failing expansion fails the session with its error.
func AsyncChainRecBreadthFirst[A, B any](a A, f func(A) AsyncStream[kont.Either[A, B]]) AsyncStream[B] {
	return func() AsyncSession[B] {
		bf := &breadthFirst[A, B]{f: f}
		bf.todo.push(a)
		return bf
	}
}

type breadthFirst[A, B any] struct {
	f    func(A) AsyncStream[kont.Either[A, B]]
	todo ring[A]
	cur  AsyncSession[kont.Either[A, B]]
	st   finished
}

// Poll implements [AsyncSession].
func (q *breadthFirst[A, B]) Poll() (B, bool, error) {
	var zero B
	if done, err := q.st.report(); done {
		return zero, false, err
	}
	for {
		if q.cur == nil {
			seed, ok := q.todo.pop()
			if !ok {
				q.st.finish(nil)
				return zero, false, nil
			}
			q.cur = q.f(seed)()
		}
		e, ok, err := q.cur.Poll()
		if iox.IsWouldBlock(err) {
			return zero, false, err
		}
		if err != nil {
			q.cur = nil
			q.st.finish(err)
			return zero, false, err
		}
		if !ok {
			q.cur = nil
			continue
		}
		if next, ok := e.GetLeft(); ok {
			q.todo.push(next)
			continue
		}
		b, _ := e.GetRight()
		return b, true, nil
	}
}
