// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Generate returns a stream driven by an effectful generator body.
//
// body is called once per invocation of the stream, on the first pull, and
// is evaluated one effect at a time with kont.StepExpr:
//   - [Yield] suspends the body and resolves the pull with its value. The
//     body resumes on the next pull.
//   - [Await] suspends the body on a future. The pull returns
//     iox.ErrWouldBlock until the future settles; a rejection fails the
//     session with the future's error.
//
// Completion of the body finishes the session.
func Generate[A any](body func() kont.Eff[struct{}]) AsyncStream[A] {
	return GenerateExpr[A](func() kont.Expr[struct{}] {
		return kont.Reify(body())
	})
}

type generator[A any] struct {
	body    func() kont.Expr[struct{}]
	susp    *kont.Suspension[struct{}]
	started bool
	yielded bool
	st      finished
}

// Poll implements [AsyncSession].
func (g *generator[A]) Poll() (A, bool, error) {
	var zero A
	if done, err := g.st.report(); done {
		return zero, false, err
	}
	switch {
	case !g.started:
		g.started = true
		_, g.susp = kont.StepExpr(g.body())
	case g.yielded:
		g.yielded = false
		_, g.susp = g.susp.Resume(struct{}{})
	}
	for g.susp != nil {
		switch op := g.susp.Op().(type) {
		case Yield[A]:
			g.yielded = true
			return op.Value, true, nil
		case awaitDispatcher:
			v, err := op.DispatchAwait()
			if iox.IsWouldBlock(err) {
				return zero, false, err
			}
			if err != nil {
				g.susp.Discard()
				g.susp = nil
				g.st.finish(err)
				return zero, false, err
			}
			_, g.susp = g.susp.Resume(v)
		default:
			g.susp.Discard()
			g.susp = nil
			panic("lazy: unhandled effect in generator")
		}
	}
	g.st.finish(nil)
	return zero, false, nil
}
