// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lazy_test

import (
	"iter"
	"strconv"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/lazy"
	"github.com/go-softwarelab/common/pkg/optional"
	"github.com/google/go-cmp/cmp"
)

func TestSessionPull(t *testing.T) {
	s := lazy.Pull(lazy.Of(1, 2))
	defer s.Stop()

	for _, want := range []int{1, 2} {
		v, ok := s.Next()
		if !ok || v != want {
			t.Fatalf("Next = (%d, %v), want (%d, true)", v, ok, want)
		}
	}
	for range 2 {
		if v, ok := s.Next(); ok {
			t.Fatalf("Next after end = (%d, true), want finished", v)
		}
	}
}

func TestSessionStopIdempotent(t *testing.T) {
	s := lazy.Pull(lazy.Of(1, 2, 3))
	if _, ok := s.Next(); !ok {
		t.Fatal("first pull finished")
	}
	s.Stop()
	s.Stop()
	if _, ok := s.Next(); ok {
		t.Fatal("pull after Stop delivered a value")
	}
}

func TestSequenceIsLazy(t *testing.T) {
	calls := 0
	s := lazy.Map(lazy.Of(1, 2, 3), func(n int) int {
		calls++
		return n
	})
	if calls != 0 {
		t.Fatalf("building the sequence ran %d mappings", calls)
	}
	sess := lazy.Pull(s)
	defer sess.Stop()
	sess.Next()
	if calls != 1 {
		t.Fatalf("one pull ran %d mappings, want 1", calls)
	}
}

func TestSequenceReplayable(t *testing.T) {
	s := lazy.Chain(lazy.Of(1, 2), func(n int) iter.Seq[int] { return lazy.Of(n, n*10) })
	first := lazy.ToSlice(s)
	second := lazy.ToSlice(s)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("replay differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 10, 2, 20}, first); diff != "" {
		t.Fatalf("Chain mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyAndFromSlice(t *testing.T) {
	if got := lazy.ToSlice(lazy.Empty[int]()); len(got) != 0 {
		t.Fatalf("Empty yielded %v", got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, lazy.ToSlice(lazy.FromSlice([]string{"a", "b"}))); diff != "" {
		t.Fatalf("FromSlice mismatch (-want +got):\n%s", diff)
	}
}

func TestChainWithIndex(t *testing.T) {
	s := lazy.ChainWithIndex(lazy.Of("a", "b"), func(i int, v string) iter.Seq[string] {
		return lazy.Of(v + strconv.Itoa(i))
	})
	if diff := cmp.Diff([]string{"a0", "b1"}, lazy.ToSlice(s)); diff != "" {
		t.Fatalf("ChainWithIndex mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterMapAndCompact(t *testing.T) {
	evens := lazy.FilterMap(lazy.Of(1, 2, 3, 4), func(n int) optional.Value[string] {
		if n%2 != 0 {
			return optional.None[string]()
		}
		return optional.Some(strconv.Itoa(n))
	})
	if diff := cmp.Diff([]string{"2", "4"}, lazy.ToSlice(evens)); diff != "" {
		t.Fatalf("FilterMap mismatch (-want +got):\n%s", diff)
	}

	compacted := lazy.Compact(lazy.Of(optional.Some(1), optional.None[int](), optional.Some(3)))
	if diff := cmp.Diff([]int{1, 3}, lazy.ToSlice(compacted)); diff != "" {
		t.Fatalf("Compact mismatch (-want +got):\n%s", diff)
	}
}

func TestSeparate(t *testing.T) {
	s := lazy.Of(
		kont.Left[string, int]("x"),
		kont.Right[string, int](1),
		kont.Left[string, int]("y"),
		kont.Right[string, int](2),
	)
	lefts, rights := lazy.Separate(s)
	if diff := cmp.Diff([]string{"x", "y"}, lazy.ToSlice(lefts)); diff != "" {
		t.Fatalf("lefts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, lazy.ToSlice(rights)); diff != "" {
		t.Fatalf("rights mismatch (-want +got):\n%s", diff)
	}
}

func TestSyncIdentityLaw(t *testing.T) {
	in := []int{3, 1, 4, 1, 5}
	got := lazy.ToSlice(lazy.Map(lazy.FromSlice(in), func(n int) int { return n }))
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("identity map mismatch (-want +got):\n%s", diff)
	}
}
