// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy

// ring is an unbounded FIFO over a power-of-two circular buffer.
// The zero value is an empty queue.
type ring[T any] struct {
	buf  []T
	head int
	size int
}

func (q *ring[T]) len() int {
	return q.size
}

func (q *ring[T]) push(v T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)&(len(q.buf)-1)] = v
	q.size++
}

func (q *ring[T]) pop() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.size--
	return v, true
}

func (q *ring[T]) grow() {
	n := 2 * len(q.buf)
	if n == 0 {
		n = 8
	}
	buf := make([]T, n)
	if q.size > 0 {
		k := copy(buf, q.buf[q.head:])
		copy(buf[k:], q.buf[:q.head])
	}
	q.buf = buf
	q.head = 0
}
