// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"code.hybscloud.com/kont"
)

// YieldThen emits v and then continues with next.
// Fuses Perform(Yield[A]{Value: v}) + Then.
func YieldThen[A, B any](v A, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield[A]{Value: v}), next)
}

// AwaitBind waits for f and passes its value to k.
// Fuses Perform(Await[A]{Future: f}) + Bind.
func AwaitBind[A, B any](f *Future[A], k func(A) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await[A]{Future: f}), k)
}

// Done ends a generator body.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}

// YieldAll emits every element of vs in order and then continues with next.
func YieldAll[A, B any](vs []A, next kont.Eff[B]) kont.Eff[B] {
	for i := len(vs) - 1; i >= 0; i-- {
		next = YieldThen(vs[i], next)
	}
	return next
}
