// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lazy"
)

// testTimeout bounds every blocking driver used in tests.
const testTimeout = 5 * time.Second

func testContext(tb testing.TB) context.Context {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	tb.Cleanup(cancel)
	return ctx
}

// drain collects every element of a fresh session of s and fails the test
// on any error.
func drain[A any](tb testing.TB, s lazy.AsyncStream[A]) []A {
	tb.Helper()
	out, err := lazy.Collect(testContext(tb), s)
	if err != nil {
		tb.Fatalf("collect: %v", err)
	}
	return out
}

// suspendN returns a stream over vs whose every pull suspends n times
// before it resolves.
func suspendN[A any](n int, vs ...A) lazy.AsyncStream[A] {
	return lazy.FromFunc(func() lazy.PollFunc[A] {
		i, waits := 0, 0
		return func() (A, bool, error) {
			var zero A
			if waits < n {
				waits++
				return zero, false, iox.ErrWouldBlock
			}
			waits = 0
			if i >= len(vs) {
				return zero, false, nil
			}
			v := vs[i]
			i++
			return v, true, nil
		}
	})
}

// failing returns a stream that emits vs and then fails with err.
func failing[A any](err error, vs ...A) lazy.AsyncStream[A] {
	return lazy.FromFunc(func() lazy.PollFunc[A] {
		i := 0
		return func() (A, bool, error) {
			var zero A
			if i >= len(vs) {
				return zero, false, err
			}
			v := vs[i]
			i++
			return v, true, nil
		}
	})
}

// pollAll polls s until it finishes, counting suspensions.
// Never use it on a stream that waits on another goroutine.
func pollAll[A any](tb testing.TB, s lazy.AsyncSession[A]) ([]A, int, error) {
	tb.Helper()
	var out []A
	suspended := 0
	for range 1 << 16 {
		v, ok, err := s.Poll()
		if iox.IsWouldBlock(err) {
			suspended++
			continue
		}
		if err != nil || !ok {
			return out, suspended, err
		}
		out = append(out, v)
	}
	tb.Fatal("session did not finish")
	return nil, 0, nil
}
