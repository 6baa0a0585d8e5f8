package parsort

import (
	"fmt"

	"github.com/exascience/pargo/parallel"
	"go.uber.org/zap"

	perrors "github.com/tamirms/parsort/errors"
)

// Span is a sorted run data[Start : Start+Len].
type Span struct {
	Start int
	Len   int
}

// End returns the index one past the span's last element.
func (s Span) End() int {
	return s.Start + s.Len
}

// insertionSort sorts s stably.
func insertionSort[T any](s []T, cmp func(a, b T) int) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i
		for j > 0 && cmp(v, s[j-1]) < 0 {
			s[j] = s[j-1]
			j--
		}
		s[j] = v
	}
}

func checkSpans(spans []Span, length int) error {
	prevEnd := 0
	for i, s := range spans {
		if s.Start < prevEnd || s.Len < 0 || s.End() > length {
			return fmt.Errorf("%w: span %d {%d, %d} (previous span ends at %d, array length %d)",
				perrors.ErrOutOfRange, i, s.Start, s.Len, prevEnd, length)
		}
		prevEnd = s.End()
	}
	return nil
}

// mergeLevel merges spans pairwise from src into dst and returns the
// merged spans. A trailing unpaired span is copied through unchanged.
func mergeLevel[T any](src, dst []T, spans []Span, cmp func(a, b T) int, cfg *config, concurrent bool) []Span {
	out := make([]Span, (len(spans)+1)/2)
	mergePair := func(i int) {
		if 2*i+1 == len(spans) {
			s := spans[2*i]
			copy(dst[s.Start:s.End()], src[s.Start:s.End()])
			out[i] = s
			return
		}
		a, b := spans[2*i], spans[2*i+1]
		m := &merger[T]{
			src:       src,
			dst:       dst,
			cmp:       cmp,
			threshold: cfg.mergeThreshold,
			parallel:  concurrent,
		}
		m.merge(a.Start, a.End(), b.Start, b.End(), a.Start)
		out[i] = Span{Start: a.Start, Len: a.Len + b.Len}
	}

	if !concurrent {
		for i := range out {
			mergePair(i)
		}
		return out
	}
	var pairs func(lo, hi int)
	pairs = func(lo, hi int) {
		if hi-lo == 1 {
			mergePair(lo)
			return
		}
		mid := lo + (hi-lo)/2
		parallel.Do(
			func() { pairs(lo, mid) },
			func() { pairs(mid, hi) },
		)
	}
	if len(out) > 0 {
		pairs(0, len(out))
	}
	return out
}

// MergeSpans performs one merge level: spans[0] with spans[1], spans[2]
// with spans[3], and so on, reading src and writing dst. Each merged pair
// is written at the start of its first span. With an odd number of spans
// the last one is copied to dst unchanged. It returns the merged spans.
//
// Spans must be in ascending, non-overlapping order. Pairs are merged
// concurrently unless WithWorkers(1) is given.
func MergeSpans[T any](src, dst []T, spans []Span, cmp func(a, b T) int, opts ...Option) ([]Span, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if cmp == nil {
		return nil, fmt.Errorf("%w: comparator", perrors.ErrNilInput)
	}
	if len(src) != len(dst) {
		return nil, fmt.Errorf("%w: src %d, dst %d", perrors.ErrLengthMismatch, len(src), len(dst))
	}
	if err := checkSpans(spans, len(src)); err != nil {
		return nil, err
	}
	return mergeLevel(src, dst, spans, cmp, cfg, cfg.workers > 1), nil
}

// mergeSort sorts data stably and returns the buffer holding the result.
func mergeSort[T any](data []T, cmp func(a, b T) int, cfg *config, concurrent bool) ([]T, error) {
	if cmp == nil {
		return nil, fmt.Errorf("%w: comparator", perrors.ErrNilInput)
	}
	n := len(data)
	if n <= 1 {
		return data, nil
	}

	base := cfg.baseCaseSize
	spans := make([]Span, 0, (n+base-1)/base)
	for start := 0; start < n; start += base {
		spans = append(spans, Span{Start: start, Len: min(base, n-start)})
	}

	var sortRuns func(lo, hi int)
	sortRuns = func(lo, hi int) {
		if !concurrent || hi-lo == 1 {
			for _, s := range spans[lo:hi] {
				insertionSort(data[s.Start:s.End()], cmp)
			}
			return
		}
		mid := lo + (hi-lo)/2
		parallel.Do(
			func() { sortRuns(lo, mid) },
			func() { sortRuns(mid, hi) },
		)
	}
	sortRuns(0, len(spans))

	if len(spans) == 1 {
		return data, nil
	}
	current, other := data, make([]T, n)
	levels := 0
	for len(spans) > 1 {
		spans = mergeLevel(current, other, spans, cmp, cfg, concurrent)
		current, other = other, current
		levels++
	}
	if ce := cfg.logger.Check(zap.DebugLevel, "merge sort finished"); ce != nil {
		ce.Write(zap.Int("elements", n), zap.Int("runs", (n+base-1)/base), zap.Int("levels", levels))
	}
	return current, nil
}

// MergeSortStable sorts data stably by cmp with a bottom-up merge sort:
// runs of the base case size are insertion sorted, then merged pairwise
// level by level, alternating between data and a scratch buffer. It
// returns whichever of the two holds the result.
func MergeSortStable[T any](data []T, cmp func(a, b T) int, opts ...Option) ([]T, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return mergeSort(data, cmp, cfg, false)
}

// MergeSortStablePar is MergeSortStable with base runs sorted and merge
// pairs merged concurrently, each merge itself split by
// MergeDivideAndConquerFunc's partitioning.
func MergeSortStablePar[T any](data []T, cmp func(a, b T) int, opts ...Option) ([]T, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return mergeSort(data, cmp, cfg, cfg.workers > 1)
}
