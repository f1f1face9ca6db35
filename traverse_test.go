// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy_test

import (
	"errors"
	"iter"
	"strconv"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lazy"
	"github.com/google/go-cmp/cmp"
)

func raggedSources() []lazy.AsyncStream[string] {
	return []lazy.AsyncStream[string]{
		suspendN(2, "a0", "a1", "a2"),
		suspendN(1, "b0"),
		suspendN(3, "c0", "c1"),
	}
}

func TestSequenceRounds(t *testing.T) {
	want := [][]string{
		{"a0", "b0", "c0"},
		{"a1", "c1"},
		{"a2"},
	}
	tests := []struct {
		name string
		s    lazy.AsyncStream[[]string]
	}{
		{"Parallel", lazy.Sequence(raggedSources())},
		{"Sequential", lazy.SequenceSeq(raggedSources())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := drain(t, tt.s)
			if diff := cmp.Diff(want, rows); diff != "" {
				t.Fatalf("rows mismatch (-want +got):\n%s", diff)
			}
			total := 0
			for _, row := range rows {
				total += len(row)
			}
			if len(rows) != 3 || total != 6 {
				t.Fatalf("got %d rows with %d values, want 3 rows with 6 values", len(rows), total)
			}
		})
	}
}

func TestTraverseWithIndex(t *testing.T) {
	s := lazy.TraverseWithIndex([]int{2, 1}, func(i, n int) lazy.AsyncStream[string] {
		vs := make([]string, n)
		for k := range vs {
			vs[k] = strconv.Itoa(i) + ":" + strconv.Itoa(k)
		}
		return suspendN(1, vs...)
	})
	want := [][]string{{"0:0", "1:0"}, {"0:1"}}
	if diff := cmp.Diff(want, drain(t, s)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseNoSeeds(t *testing.T) {
	id := func(s lazy.AsyncStream[int]) lazy.AsyncStream[int] { return s }
	tests := []struct {
		name string
		s    lazy.AsyncStream[[]int]
	}{
		{"Traverse", lazy.Traverse(nil, id)},
		{"TraverseSeq", lazy.TraverseSeq(nil, id)},
		{"Sequence", lazy.Sequence[int](nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff([][]int{{}}, drain(t, tt.s)); diff != "" {
				t.Fatalf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// countingSource counts the pulls started on it; every pull suspends once.
func countingSource(started *int, vs ...int) lazy.AsyncStream[int] {
	inner := suspendN(1, vs...)
	return func() lazy.AsyncSession[int] {
		sess := inner()
		waiting := false
		return lazy.PollFunc[int](func() (int, bool, error) {
			if !waiting {
				*started++
			}
			v, ok, err := sess.Poll()
			waiting = iox.IsWouldBlock(err)
			return v, ok, err
		})
	}
}

func TestParallelRoundOverlapsPulls(t *testing.T) {
	var started int
	sources := []lazy.AsyncStream[int]{
		countingSource(&started, 1),
		countingSource(&started, 2),
		countingSource(&started, 3),
	}

	par := lazy.Sequence(sources)()
	if _, _, err := par.Poll(); !iox.IsWouldBlock(err) {
		t.Fatalf("first Poll = %v, want ErrWouldBlock", err)
	}
	if started != 3 {
		t.Fatalf("parallel round started %d pulls before suspending, want 3", started)
	}

	started = 0
	seq := lazy.SequenceSeq(sources)()
	if _, _, err := seq.Poll(); !iox.IsWouldBlock(err) {
		t.Fatalf("first Poll = %v, want ErrWouldBlock", err)
	}
	if started != 1 {
		t.Fatalf("sequential round started %d pulls before suspending, want 1", started)
	}
}

func TestTraverseFailure(t *testing.T) {
	boom := errors.New("boom")
	sess := lazy.Sequence([]lazy.AsyncStream[int]{
		lazy.AsyncOf(1, 2, 3),
		failing(boom, 10),
	})()
	got, _, err := pollAll(t, sess)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if diff := cmp.Diff([][]int{{1, 10}}, got); diff != "" {
		t.Fatalf("rows before failure mismatch (-want +got):\n%s", diff)
	}
	if _, _, err := sess.Poll(); !errors.Is(err, boom) {
		t.Fatalf("failure not sticky: %v", err)
	}
}

func TestSequenceSeqs(t *testing.T) {
	rows := lazy.ToSlice(lazy.SequenceSeqs([]iter.Seq[int]{
		lazy.Of(1, 2, 3),
		lazy.Of(10),
		lazy.Of(100, 200),
	}))
	want := [][]int{{1, 10, 100}, {2, 200}, {3}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([][]int{{}}, lazy.ToSlice(lazy.SequenceSeqs[int](nil))); diff != "" {
		t.Fatalf("no sources mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseSeqsEarlyStop(t *testing.T) {
	s := lazy.TraverseSeqs([]int{1, 2}, func(_ int, n int) iter.Seq[int] {
		return lazy.Of(n, n, n)
	})
	for row := range s {
		if diff := cmp.Diff([]int{1, 2}, row); diff != "" {
			t.Fatalf("first row mismatch (-want +got):\n%s", diff)
		}
		break
	}
}
