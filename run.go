// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"context"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run evaluates a Cont-world computation that awaits futures and returns
// its result. Waits on the calling goroutine using adaptive backoff
// (iox.Backoff) while the awaited future is pending. Does not spawn
// goroutines.
//
// A rejected future ends the computation with the future's error.
// Performing [Yield] outside a generator panics.
func Run[R any](ctx context.Context, body kont.Eff[R]) (R, error) {
	return RunExpr(ctx, kont.Reify(body))
}

// RunExpr is [Run] for an Expr-world computation.
func RunExpr[R any](ctx context.Context, body kont.Expr[R]) (R, error) {
	result, susp := kont.StepExpr(body)
	var bo iox.Backoff
	for susp != nil {
		op, ok := susp.Op().(awaitDispatcher)
		if !ok {
			susp.Discard()
			panic("lazy: unhandled effect in Run")
		}
		v, err := op.DispatchAwait()
		if iox.IsWouldBlock(err) {
			if cerr := ctx.Err(); cerr != nil {
				susp.Discard()
				var zero R
				return zero, cerr
			}
			bo.Wait()
			continue
		}
		if err != nil {
			susp.Discard()
			var zero R
			return zero, err
		}
		bo.Reset()
		result, susp = susp.Resume(v)
	}
	return result, nil
}
