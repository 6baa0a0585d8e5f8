package parsort

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	perrors "github.com/tamirms/parsort/errors"
	"github.com/tamirms/parsort/internal/gen"
)

func TestMergeSortStable(t *testing.T) {
	rng := newTestRNG(t)
	for _, n := range testSizes {
		for _, base := range []int{1, 5, DefaultBaseCaseSize} {
			t.Run(fmt.Sprintf("n=%d/base=%d", n, base), func(t *testing.T) {
				input := makeTagged(rng, n, 1+n/10)

				got, err := MergeSortStable(slices.Clone(input), compareTagged, WithBaseCaseSize(base))
				require.NoError(t, err)
				require.Len(t, got, n)
				requireStableOrder(t, got)

				gotPar, err := MergeSortStablePar(slices.Clone(input), compareTagged,
					WithBaseCaseSize(base), WithMergeThreshold(64), WithWorkers(4))
				require.NoError(t, err)
				require.Equal(t, got, gotPar)
			})
		}
	}
}

func TestMergeSortStableMatchesSlicesSort(t *testing.T) {
	input := makeKeys[int64](t, 30000, gen.Random)
	want := slices.Clone(input)
	slices.Sort(want)

	got, err := MergeSortStablePar(input, cmp.Compare[int64])
	require.NoError(t, err)
	if diff := gocmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSortStableNilComparator(t *testing.T) {
	_, err := MergeSortStable([]int{2, 1}, nil)
	require.ErrorIs(t, err, perrors.ErrNilInput)
}

func TestMergeSpans(t *testing.T) {
	src := []int{3, 7, 1, 2, 9, 4, 5, 0, 8}
	spans := []Span{{0, 2}, {2, 3}, {5, 2}, {7, 1}, {8, 1}}
	for _, workers := range []int{1, 4} {
		dst := make([]int, len(src))
		got, err := MergeSpans(src, dst, spans, cmp.Compare[int], WithWorkers(workers))
		require.NoError(t, err)
		require.Equal(t, []Span{{0, 5}, {5, 3}, {8, 1}}, got)
		require.Equal(t, []int{1, 2, 3, 7, 9, 0, 4, 5, 8}, dst)
	}
}

func TestMergeSpansNonAdjacent(t *testing.T) {
	src := []int{5, 6, -1, 1, 2}
	dst := make([]int, len(src))
	got, err := MergeSpans(src, dst, []Span{{0, 2}, {3, 2}}, cmp.Compare[int])
	require.NoError(t, err)
	require.Equal(t, []Span{{0, 4}}, got)
	require.Equal(t, []int{1, 2, 5, 6}, dst[:4])
}

func TestMergeSpansErrors(t *testing.T) {
	src := []int{1, 2, 3, 4}

	_, err := MergeSpans(src, make([]int, 3), []Span{{0, 4}}, cmp.Compare[int])
	require.ErrorIs(t, err, perrors.ErrLengthMismatch)

	_, err = MergeSpans(src, make([]int, 4), []Span{{0, 4}}, nil)
	require.ErrorIs(t, err, perrors.ErrNilInput)

	for _, spans := range [][]Span{
		{{0, 5}},
		{{2, 2}, {0, 2}},
		{{0, 3}, {2, 2}},
		{{-1, 2}},
		{{0, -1}},
	} {
		_, err = MergeSpans(src, make([]int, 4), spans, cmp.Compare[int])
		if !errors.Is(err, perrors.ErrOutOfRange) {
			t.Errorf("spans %v: got %v, want ErrOutOfRange", spans, err)
		}
	}
}
