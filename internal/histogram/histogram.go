// Package histogram counts byte digits of integer keys.
//
// Every function reads each element exactly once and never mutates its
// input. Parallel variants split the input at the midpoint and recurse on
// both halves concurrently; each half accumulates into a private table and
// the tables are summed only after both branches have joined.
package histogram

import (
	"github.com/exascience/pargo/parallel"
	"golang.org/x/exp/constraints"

	"github.com/tamirms/parsort/internal/keys"
)

// Counts is a per-bin element count for one digit.
type Counts = [keys.NumBins]int

// Bytes counts the digit selected by shift over all of src.
func Bytes[T constraints.Integer](src []T, shift uint) Counts {
	var c Counts
	for _, v := range src {
		c[uint8(uint64(v)>>shift)]++
	}
	return c
}

// Parallel is Bytes with balanced binary fan-out down to threshold elements.
func Parallel[T constraints.Integer](src []T, shift uint, threshold int) Counts {
	if len(src) <= threshold || threshold <= 0 {
		return Bytes(src, shift)
	}
	mid := len(src) / 2
	var left, right Counts
	parallel.Do(
		func() { left = Parallel(src[:mid], shift, threshold) },
		func() { right = Parallel(src[mid:], shift, threshold) },
	)
	Add(&left, &right)
	return left
}

// Multi counts every digit of T in a single read pass over src.
// The result has keys.NumDigits[T]() tables, least significant first.
func Multi[T constraints.Integer](src []T) []Counts {
	n := keys.NumDigits[T]()
	c := make([]Counts, n)
	switch n {
	case 1:
		for _, v := range src {
			c[0][uint8(v)]++
		}
	case 2:
		for _, v := range src {
			u := uint64(v)
			c[0][uint8(u)]++
			c[1][uint8(u>>8)]++
		}
	case 4:
		for _, v := range src {
			u := uint64(v)
			c[0][uint8(u)]++
			c[1][uint8(u>>8)]++
			c[2][uint8(u>>16)]++
			c[3][uint8(u>>24)]++
		}
	default:
		for _, v := range src {
			u := uint64(v)
			for d := range c {
				c[d][uint8(u)]++
				u >>= keys.DigitBits
			}
		}
	}
	return c
}

// ParallelMulti is Multi with balanced binary fan-out down to threshold elements.
func ParallelMulti[T constraints.Integer](src []T, threshold int) []Counts {
	if len(src) <= threshold || threshold <= 0 {
		return Multi(src)
	}
	mid := len(src) / 2
	var left, right []Counts
	parallel.Do(
		func() { left = ParallelMulti(src[:mid], threshold) },
		func() { right = ParallelMulti(src[mid:], threshold) },
	)
	for d := range left {
		Add(&left[d], &right[d])
	}
	return left
}

// Add accumulates src into dst element-wise.
func Add(dst, src *Counts) {
	for b := range dst {
		dst[b] += src[b]
	}
}

// Total returns the sum of all bins.
func Total(c *Counts) int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// NonEmpty returns the number of bins with a non-zero count.
func NonEmpty(c *Counts) int {
	n := 0
	for _, v := range c {
		if v != 0 {
			n++
		}
	}
	return n
}
