// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated frame to avoid boxing an empty struct on every fused
// Expr-world construction.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprYieldThen emits v and then continues with next.
// Fuses ExprPerform(Yield[A]{Value: v}) + ExprThen.
func ExprYieldThen[A, B any](v A, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Yield[A]{Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func awaitBindUnwind[A, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	k := data.(func(A) kont.Expr[B])
	result := k(current.(A))
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind waits for f and passes its value to k.
// Fuses ExprPerform(Await[A]{Future: f}) + ExprBind.
func ExprAwaitBind[A, B any](f *Future[A], k func(A) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = k
	bf.Unwind = awaitBindUnwind[A, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Await[A]{Future: f}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprDone ends an Expr-world generator body.
func ExprDone() kont.Expr[struct{}] {
	return kont.ExprReturn(struct{}{})
}
