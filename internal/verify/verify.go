// Package verify checks sort results: ordering, bit-identical equality via
// an order-sensitive digest, and permutation preservation via an
// order-insensitive multiset fingerprint.
package verify

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/constraints"
)

// Sorted returns the index of the first element smaller than its
// predecessor, or -1 if keys is non-decreasing.
func Sorted[T constraints.Integer | constraints.Float](keys []T) int {
	for i := 1; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			return i
		}
	}
	return -1
}

// Digest is an xxHash64 over the little-endian bytes of keys in order. Two
// arrays with equal digests are, for test purposes, bit-identical.
func Digest[T constraints.Integer](keys []T) uint64 {
	d := xxhash.New()
	var buf [8 * 512]byte
	n := 0
	for _, v := range keys {
		binary.LittleEndian.PutUint64(buf[n:], uint64(v))
		n += 8
		if n == len(buf) {
			_, _ = d.Write(buf[:n])
			n = 0
		}
	}
	_, _ = d.Write(buf[:n])
	return d.Sum64()
}

// Multiset is an order-insensitive fingerprint of keys: the wrapping sum
// and xor of a murmur3 hash of every element, plus the count.
type Multiset struct {
	Count int
	Sum   uint64
	Xor   uint64
}

// Fingerprint computes the multiset fingerprint of keys.
func Fingerprint[T constraints.Integer](keys []T) Multiset {
	var m Multiset
	var buf [8]byte
	for _, v := range keys {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h := murmur3.Sum64(buf[:])
		m.Sum += h
		m.Xor ^= h
	}
	m.Count = len(keys)
	return m
}

// String implements fmt.Stringer.
func (m Multiset) String() string {
	return fmt.Sprintf("{n=%d sum=%016x xor=%016x}", m.Count, m.Sum, m.Xor)
}

// Check verifies that sorted is ordered and is a permutation of the
// multiset fingerprinted by before.
func Check[T constraints.Integer](sorted []T, before Multiset) error {
	if i := Sorted(sorted); i >= 0 {
		return fmt.Errorf("out of order at index %d: %v after %v", i, sorted[i], sorted[i-1])
	}
	if got := Fingerprint(sorted); got != before {
		return fmt.Errorf("not a permutation of the input: fingerprint %v, want %v", got, before)
	}
	return nil
}
