package parsort

import (
	"cmp"
	"fmt"

	"github.com/exascience/pargo/parallel"

	perrors "github.com/tamirms/parsort/errors"
)

// merger merges sorted ranges of src into dst. The two recursive halves of
// every split write disjoint ranges of dst and read only src.
type merger[T any] struct {
	src       []T
	dst       []T
	cmp       func(a, b T) int
	threshold int
	parallel  bool
}

// merge merges src[a0:a1] and src[b0:b1] into dst starting at d.
func (m *merger[T]) merge(a0, a1, b0, b1, d int) {
	n1, n2 := a1-a0, b1-b0
	if n1+n2 <= m.threshold {
		m.linear(a0, a1, b0, b1, d)
		return
	}

	if n1 > n2 {
		// Pivot from the left range; equal right elements go after it.
		q1 := a0 + n1/2
		q2 := m.lowerBound(b0, b1, m.src[q1])
		q3 := d + (q1 - a0) + (q2 - b0)
		m.dst[q3] = m.src[q1]
		m.fork(
			func() { m.merge(a0, q1, b0, q2, d) },
			func() { m.merge(q1+1, a1, q2, b1, q3+1) },
		)
		return
	}

	// Pivot from the right range; equal left elements go before it.
	q2 := b0 + n2/2
	q1 := m.upperBound(a0, a1, m.src[q2])
	q3 := d + (q1 - a0) + (q2 - b0)
	m.dst[q3] = m.src[q2]
	m.fork(
		func() { m.merge(a0, q1, b0, q2, d) },
		func() { m.merge(q1, a1, q2+1, b1, q3+1) },
	)
}

func (m *merger[T]) fork(lower, upper func()) {
	if m.parallel {
		parallel.Do(lower, upper)
		return
	}
	lower()
	upper()
}

// lowerBound returns the first index in [lo, hi) whose element is not less
// than x, or hi.
func (m *merger[T]) lowerBound(lo, hi int, x T) int {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if m.cmp(m.src[mid], x) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the first index in [lo, hi) whose element is greater
// than x, or hi.
func (m *merger[T]) upperBound(lo, hi int, x T) int {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if m.cmp(m.src[mid], x) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// linear is the two-pointer merge. Ties take the left element first.
func (m *merger[T]) linear(a0, a1, b0, b1, d int) {
	src, dst := m.src, m.dst
	for a0 < a1 && b0 < b1 {
		if m.cmp(src[b0], src[a0]) < 0 {
			dst[d] = src[b0]
			b0++
		} else {
			dst[d] = src[a0]
			a0++
		}
		d++
	}
	d += copy(dst[d:], src[a0:a1])
	copy(dst[d:], src[b0:b1])
}

func checkRange(name string, start, end, length int) error {
	if start < 0 || end < start || end > length {
		return fmt.Errorf("%w: %s [%d, %d) in array of length %d", perrors.ErrOutOfRange, name, start, end, length)
	}
	return nil
}

func checkMergeArgs[T any](src []T, aStart, aEnd, bStart, bEnd int, dst []T, dstStart int, cmp func(a, b T) int) error {
	if cmp == nil {
		return fmt.Errorf("%w: comparator", perrors.ErrNilInput)
	}
	if err := checkRange("left span", aStart, aEnd, len(src)); err != nil {
		return err
	}
	if err := checkRange("right span", bStart, bEnd, len(src)); err != nil {
		return err
	}
	total := (aEnd - aStart) + (bEnd - bStart)
	if dst == nil && total > 0 {
		return fmt.Errorf("%w: destination", perrors.ErrNilInput)
	}
	return checkRange("destination", dstStart, dstStart+total, len(dst))
}

// MergeDivideAndConquerFunc merges the sorted ranges src[aStart:aEnd] and
// src[bStart:bEnd] into dst[dstStart:], ordered by cmp.
//
// The longer range is split at its midpoint and the pivot's partner
// position found by binary search in the other range, so the pivot lands
// directly at its final position and the two remaining halves are merged
// concurrently. Combined ranges at or below the merge threshold use a
// linear merge. The merge is stable: elements of the left range precede
// equal elements of the right range.
//
// The two source ranges must not overlap each other or the destination
// range. They may lie anywhere in src, in either order.
func MergeDivideAndConquerFunc[T any](src []T, aStart, aEnd, bStart, bEnd int, dst []T, dstStart int, cmp func(a, b T) int, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if err := checkMergeArgs(src, aStart, aEnd, bStart, bEnd, dst, dstStart, cmp); err != nil {
		return err
	}
	m := &merger[T]{
		src:       src,
		dst:       dst,
		cmp:       cmp,
		threshold: cfg.mergeThreshold,
		parallel:  cfg.workers > 1,
	}
	m.merge(aStart, aEnd, bStart, bEnd, dstStart)
	return nil
}

// MergeDivideAndConquer is MergeDivideAndConquerFunc for ordered types,
// using cmp.Compare.
func MergeDivideAndConquer[T cmp.Ordered](src []T, aStart, aEnd, bStart, bEnd int, dst []T, dstStart int, opts ...Option) error {
	return MergeDivideAndConquerFunc(src, aStart, aEnd, bStart, bEnd, dst, dstStart, cmp.Compare[T], opts...)
}
