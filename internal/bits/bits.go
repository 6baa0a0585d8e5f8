// Package bits provides low-level bit manipulation primitives.
package bits

import (
	"math/bits"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineBytes is the cache line size of the target architecture, as
// padded by golang.org/x/sys/cpu.
const CacheLineBytes = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// ElemsPerCacheLine returns how many elements of elemSize bytes fill one
// cache line, never less than 1.
func ElemsPerCacheLine(elemSize int) int {
	if elemSize <= 0 || elemSize >= CacheLineBytes {
		return 1
	}
	return CacheLineBytes / elemSize
}

// FastRange32 maps a 64-bit hash uniformly to [0, n) returning uint32.
// Uses the "fastrange" technique: multiply and take high bits.
// This is the standard way to map hashes to ranges without modulo bias.
func FastRange32(hash uint64, n uint32) uint32 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, uint64(n))
	return uint32(hi)
}

// CeilDiv returns ceil(a/b) for a >= 0, b > 0.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
