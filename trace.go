// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import (
	"log/slog"

	"code.hybscloud.com/iox"
	"github.com/go-softwarelab/common/pkg/slogx"
)

// Trace logs the lifecycle of every session of s at debug level: the
// session's start, each delivered element, its finish and its failure.
// Suspensions are not logged. A nil logger falls back to slog.Default.
func Trace[A any](s AsyncStream[A], logger *slog.Logger) AsyncStream[A] {
	logger = slogx.ChildForComponent(slogx.DefaultIfNil(logger), "lazy")
	return func() AsyncSession[A] {
		serial := nextSerial()
		log := logger.With(slogx.Number("session", serial))
		log.Debug("session started")
		src := s()
		n := 0
		var st finished
		return PollFunc[A](func() (A, bool, error) {
			if done, err := st.report(); done {
				var zero A
				return zero, false, err
			}
			v, ok, err := src.Poll()
			switch {
			case iox.IsWouldBlock(err):
			case err != nil:
				st.finish(err)
				log.Debug("session failed", slogx.Number("elements", n), slogx.Error(err))
			case !ok:
				st.finish(nil)
				log.Debug("session finished", slogx.Number("elements", n))
			default:
				log.Debug("element", slogx.Number("index", n))
				n++
			}
			return v, ok, err
		})
	}
}
