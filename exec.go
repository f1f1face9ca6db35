// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"context"

	"code.hybscloud.com/iox"
)

// Next pulls the next element of s, blocking until the pull resolves or
// ctx is done. Waits past the iox.ErrWouldBlock boundary with adaptive
// backoff (iox.Backoff), without spawning goroutines or creating channels.
//
// When ctx ends first, the outstanding pull is left in place: a later Next
// or Poll on s continues it.
func Next[A any](ctx context.Context, s AsyncSession[A]) (A, bool, error) {
	var bo iox.Backoff
	for {
		v, ok, err := s.Poll()
		if !iox.IsWouldBlock(err) {
			return v, ok, err
		}
		if cerr := ctx.Err(); cerr != nil {
			var zero A
			return zero, false, cerr
		}
		bo.Wait()
	}
}

// ForEach invokes a fresh session of s and calls fn with every element in
// order. It stops at the first failure, which may come from the stream,
// from fn, or from ctx.
func ForEach[A any](ctx context.Context, s AsyncStream[A], fn func(A) error) error {
	sess := s()
	for {
		v, ok, err := Next(ctx, sess)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// Collect drains a fresh session of s into a slice.
// On failure it returns the elements received so far along with the error.
func Collect[A any](ctx context.Context, s AsyncStream[A]) ([]A, error) {
	var out []A
	err := ForEach(ctx, s, func(v A) error {
		out = append(out, v)
		return nil
	})
	return out, err
}
