// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"code.hybscloud.com/kont"
)

// GenerateExpr is [Generate] for an Expr-world body, built with
// [ExprYieldThen], [ExprAwaitBind] and [ExprDone] or reified with kont.Reify.
// body is called once per invocation of the stream, on the first pull.
func GenerateExpr[A any](body func() kont.Expr[struct{}]) AsyncStream[A] {
	return func() AsyncSession[A] {
		return &generator[A]{body: body}
	}
}

// Task returns a Cont-world body that awaits f and ends with its value.
// It lifts a future into a computation for [Run].
func Task[A any](f *Future[A]) kont.Eff[A] {
	return kont.Perform(Await[A]{Future: f})
}
