package parsort

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/tamirms/parsort/errors"
)

func TestMergeDivideAndConquerExample(t *testing.T) {
	src := []int{1, 4, 9, 2, 3, 10}
	dst := make([]int, 6)
	if err := MergeDivideAndConquer(src, 0, 3, 3, 6, dst, 0, WithMergeThreshold(1)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 9, 10}, dst); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeDivideAndConquerRandom(t *testing.T) {
	rng := newTestRNG(t)
	for _, sizes := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {1, 1}, {100, 3}, {3, 100}, {5000, 5000}, {20000, 1}} {
		for _, threshold := range []int{1, 16, DefaultMergeThreshold} {
			t.Run(fmt.Sprintf("%dx%d/threshold=%d", sizes[0], sizes[1], threshold), func(t *testing.T) {
				src := make([]int, sizes[0]+sizes[1])
				for i := range src {
					src[i] = rng.IntN(1000)
				}
				slices.Sort(src[:sizes[0]])
				slices.Sort(src[sizes[0]:])
				want := slices.Clone(src)
				slices.Sort(want)

				for _, workers := range []int{1, 4} {
					dst := make([]int, len(src)+3)
					err := MergeDivideAndConquer(src, 0, sizes[0], sizes[0], len(src), dst, 3,
						WithMergeThreshold(threshold), WithWorkers(workers))
					if err != nil {
						t.Fatal(err)
					}
					if diff := cmp.Diff(want, dst[3:]); diff != "" {
						t.Fatalf("workers=%d mismatch (-want +got):\n%s", workers, diff)
					}
				}
			})
		}
	}
}

func TestMergeDivideAndConquerStable(t *testing.T) {
	rng := newTestRNG(t)
	for _, sizes := range [][2]int{{1000, 1000}, {3000, 17}, {17, 3000}, {1, 999}} {
		left := makeTagged(rng, sizes[0], 10)
		right := makeTagged(rng, sizes[1], 10)
		for i := range right {
			right[i].pos += sizes[0]
		}
		slices.SortStableFunc(left, compareTagged)
		slices.SortStableFunc(right, compareTagged)

		// Right span first in src: stability follows the span roles, not
		// their placement.
		src := append(slices.Clone(right), left...)
		dst := make([]tagged, len(src))
		err := MergeDivideAndConquerFunc(src, sizes[1], len(src), 0, sizes[1], dst, 0, compareTagged,
			WithMergeThreshold(8), WithWorkers(4))
		if err != nil {
			t.Fatal(err)
		}
		requireStableOrder(t, dst)
	}
}

// TestMergeSelfConsistent merges runs pairwise with the merge's own output
// as the next level's input.
func TestMergeSelfConsistent(t *testing.T) {
	rng := newTestRNG(t)
	const runs, runLen = 16, 500
	data := make([]int32, runs*runLen)
	for i := range data {
		data[i] = int32(rng.IntN(200)) - 100
	}
	for r := range runs {
		slices.Sort(data[r*runLen : (r+1)*runLen])
	}
	want := slices.Clone(data)
	slices.Sort(want)

	src, dst := data, make([]int32, len(data))
	for width := runLen; width < len(data); width *= 2 {
		for lo := 0; lo < len(data); lo += 2 * width {
			mid, hi := lo+width, lo+2*width
			if err := MergeDivideAndConquer(src, lo, mid, mid, hi, dst, lo, WithMergeThreshold(64)); err != nil {
				t.Fatal(err)
			}
		}
		src, dst = dst, src
	}
	if diff := cmp.Diff(want, src); diff != "" {
		t.Errorf("repeated merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeDivideAndConquerErrors(t *testing.T) {
	src := []int{1, 2, 3, 4}
	dst := make([]int, 4)
	cases := []struct {
		name string
		call func() error
		want error
	}{
		{"nil comparator", func() error {
			return MergeDivideAndConquerFunc(src, 0, 2, 2, 4, dst, 0, nil)
		}, perrors.ErrNilInput},
		{"nil destination", func() error {
			return MergeDivideAndConquer(src, 0, 2, 2, 4, nil, 0)
		}, perrors.ErrNilInput},
		{"left past end", func() error {
			return MergeDivideAndConquer(src, 0, 5, 2, 4, dst, 0)
		}, perrors.ErrOutOfRange},
		{"right reversed", func() error {
			return MergeDivideAndConquer(src, 0, 2, 4, 2, dst, 0)
		}, perrors.ErrOutOfRange},
		{"negative start", func() error {
			return MergeDivideAndConquer(src, -1, 2, 2, 4, dst, 0)
		}, perrors.ErrOutOfRange},
		{"destination too short", func() error {
			return MergeDivideAndConquer(src, 0, 2, 2, 4, dst, 1)
		}, perrors.ErrOutOfRange},
		{"invalid threshold", func() error {
			return MergeDivideAndConquer(src, 0, 2, 2, 4, dst, 0, WithMergeThreshold(0))
		}, perrors.ErrInvalidConfig},
	}
	for _, tc := range cases {
		if err := tc.call(); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// Nothing to merge into a nil destination is fine.
	if err := MergeDivideAndConquer(src, 1, 1, 3, 3, nil, 0); err != nil {
		t.Errorf("empty merge into nil: %v", err)
	}
}
