// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"code.hybscloud.com/kont"
)

// Yield is the effect operation for emitting one element from a generator.
// Perform(Yield[A]{Value: v}) hands v to the pulling session and suspends
// the generator until the next pull.
type Yield[A any] struct {
	kont.Phantom[struct{}]
	Value A
}

// awaitDispatcher is the structural interface for await effects.
// DispatchAwait is non-blocking: it returns iox.ErrWouldBlock while the
// awaited unit is pending.
type awaitDispatcher interface {
	DispatchAwait() (kont.Resumed, error)
}

// Await is the effect operation for suspending a generator on a future.
// Perform(Await[A]{Future: f}) resumes with the resolved value of f.
type Await[A any] struct {
	kont.Phantom[A]
	Future *Future[A]
}

// DispatchAwait polls the awaited future.
// Non-blocking: returns iox.ErrWouldBlock while the future is pending.
func (a Await[A]) DispatchAwait() (kont.Resumed, error) {
	v, err := a.Future.Poll()
	if err != nil {
		return nil, err
	}
	return v, nil
}
