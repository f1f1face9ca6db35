// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

import "errors"

var (
	// ErrSettled is returned when settling a future that is already settled.
	ErrSettled = errors.New("lazy: future already settled")

	// ErrClosed is returned by Send on a closed pipe.
	ErrClosed = errors.New("lazy: pipe closed")
)
