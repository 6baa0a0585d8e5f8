// Package offsets turns digit counts into bin start offsets.
//
// Tables are built serially; their cost is O(chunks × 256), negligible next
// to the O(N) scatter they make safe to run in parallel.
package offsets

import "github.com/tamirms/parsort/internal/keys"

// Table holds the output index where the next element of each bin goes.
type Table = [keys.NumBins]int

// Counts is a per-bin element count.
type Counts = [keys.NumBins]int

// ascending lays bins out in digit order.
var ascending = func() (o [keys.NumBins]uint8) {
	for b := range o {
		o[b] = uint8(b)
	}
	return o
}()

// signed lays out 0x80..0xFF before 0x00..0x7F. The most significant byte of
// a negative two's complement key is numerically larger than that of any
// non-negative key, so the top digit of a signed type needs this order.
var signed = func() (o [keys.NumBins]uint8) {
	for b := range o {
		o[b] = uint8(b) ^ 0x80
	}
	return o
}()

// Order returns the bin layout order: ascending, or the signed layout for
// the most significant digit of a signed key type.
func Order(signedTopDigit bool) *[keys.NumBins]uint8 {
	if signedTopDigit {
		return &signed
	}
	return &ascending
}

// Exclusive returns the exclusive prefix sum of counts in ascending bin
// order, starting at base.
func Exclusive(counts *Counts, base int) Table {
	var t Table
	pos := base
	for b, n := range counts {
		t[b] = pos
		pos += n
	}
	return t
}

// SignedOrder is Exclusive for the most significant digit of a signed key
// type: bins 0x80..0xFF are laid out before 0x00..0x7F.
func SignedOrder(counts *Counts, base int) Table {
	var t Table
	pos := base
	for b := 0x80; b < keys.NumBins; b++ {
		t[b] = pos
		pos += counts[b]
	}
	for b := 0; b < 0x80; b++ {
		t[b] = pos
		pos += counts[b]
	}
	return t
}

// Global picks Exclusive or SignedOrder.
func Global(counts *Counts, base int, signedTopDigit bool) Table {
	if signedTopDigit {
		return SignedOrder(counts, base)
	}
	return Exclusive(counts, base)
}

// Chained builds one start table per chunk. Chunk 0 starts at the global
// start of each bin and chunk q continues where chunk q-1 left off, so every
// chunk writes a disjoint, order-preserving range of each bin. dst is reused
// when it has room for len(chunkCounts) tables.
func Chained(dst []Table, chunkCounts []Counts, base int, signedTopDigit bool) []Table {
	if cap(dst) < len(chunkCounts) {
		dst = make([]Table, len(chunkCounts))
	}
	dst = dst[:len(chunkCounts)]
	if len(chunkCounts) == 0 {
		return dst
	}

	var total Counts
	for q := range chunkCounts {
		for b, n := range chunkCounts[q] {
			total[b] += n
		}
	}
	dst[0] = Global(&total, base, signedTopDigit)
	for q := 1; q < len(chunkCounts); q++ {
		prev := &dst[q-1]
		prevCounts := &chunkCounts[q-1]
		cur := &dst[q]
		for b := range cur {
			cur[b] = prev[b] + prevCounts[b]
		}
	}
	return dst
}
