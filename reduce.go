package parsort

import (
	"github.com/exascience/pargo/parallel"
	"github.com/exascience/pargo/speculative"
	"golang.org/x/exp/constraints"
)

// Number is the set of element types Sum accepts.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum adds up data by balanced binary fan-out: ranges above the parallel
// threshold are halved and both halves summed concurrently. Integer sums
// wrap on overflow.
func Sum[T Number](data []T, opts ...Option) (T, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}
	threshold := cfg.parallelThreshold
	if cfg.workers == 1 {
		threshold = len(data)
	}
	return sum(data, threshold), nil
}

func sum[T Number](data []T, threshold int) T {
	if len(data) <= threshold || len(data) < 2 {
		var s T
		for _, v := range data {
			s += v
		}
		return s
	}
	half := len(data) / 2
	var left, right T
	parallel.Do(
		func() { left = sum(data[:half], threshold) },
		func() { right = sum(data[half:], threshold) },
	)
	return left + right
}

// SequenceEqual reports whether a and b have the same length and equal
// elements at every index. Halves are compared concurrently and a mismatch
// in one half stops waiting for the other.
func SequenceEqual[T comparable](a, b []T, opts ...Option) (bool, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return false, err
	}
	if len(a) != len(b) {
		return false, nil
	}
	threshold := cfg.parallelThreshold
	if cfg.workers == 1 {
		threshold = len(a)
	}
	return equal(a, b, threshold), nil
}

func equal[T comparable](a, b []T, threshold int) bool {
	if len(a) <= threshold || len(a) < 2 {
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}
	half := len(a) / 2
	return speculative.And(
		func() bool { return equal(a[:half], b[:half], threshold) },
		func() bool { return equal(a[half:], b[half:], threshold) },
	)
}
