// Package scatter moves keys into their bins through small per-bin staging
// buffers.
//
// A plain counting-sort scatter writes every element to one of up to 256
// independent output streams, touching a different cache line almost every
// time. Staging up to depth elements per bin and copying them out in one
// block turns those scattered single writes into sequential bursts.
package scatter

import (
	"golang.org/x/exp/constraints"

	"github.com/tamirms/parsort/internal/keys"
)

// Buffers is the private staging area of one chunk: depth elements for
// each of the 256 bins plus a fill cursor per bin. A Buffers value must
// never be used by two chunks at the same time.
type Buffers[T any] struct {
	depth int
	data  []T
	fill  [keys.NumBins]int
}

// NewBuffers allocates a staging area of the given per-bin depth.
func NewBuffers[T any](depth int) *Buffers[T] {
	if depth < 1 {
		depth = 1
	}
	return &Buffers[T]{
		depth: depth,
		data:  make([]T, depth*keys.NumBins),
	}
}

// Depth returns the per-bin capacity.
func (b *Buffers[T]) Depth() int {
	return b.depth
}

// Reset empties every bin without releasing storage.
func (b *Buffers[T]) Reset() {
	b.fill = [keys.NumBins]int{}
}

// Scatter writes every element of src to dst at the current start of its
// bin, advancing starts. src is scanned left to right and each bin is
// flushed in arrival order, so equal digits keep their source order.
//
// On return starts[b] has advanced by the number of elements of bin b in
// src and buf is empty.
func Scatter[T constraints.Integer](src, dst []T, starts *[keys.NumBins]int, shift uint, buf *Buffers[T]) {
	depth := buf.depth
	if depth == 1 {
		direct(src, dst, starts, shift)
		return
	}
	data := buf.data
	fill := &buf.fill
	for _, v := range src {
		bin := uint8(uint64(v) >> shift)
		f := fill[bin]
		base := int(bin) * depth
		if f == depth {
			pos := starts[bin]
			copy(dst[pos:pos+depth], data[base:base+depth])
			starts[bin] = pos + depth
			f = 0
		}
		data[base+f] = v
		fill[bin] = f + 1
	}
	Flush(dst, starts, buf)
}

// Flush copies every non-empty bin of buf to dst and empties it.
func Flush[T any](dst []T, starts *[keys.NumBins]int, buf *Buffers[T]) {
	depth := buf.depth
	for bin, f := range buf.fill {
		if f == 0 {
			continue
		}
		base := bin * depth
		pos := starts[bin]
		copy(dst[pos:pos+f], buf.data[base:base+f])
		starts[bin] = pos + f
		buf.fill[bin] = 0
	}
}

// direct is the unbuffered counting-sort scatter used for a depth of one,
// where staging would only add a copy.
func direct[T constraints.Integer](src, dst []T, starts *[keys.NumBins]int, shift uint) {
	for _, v := range src {
		bin := uint8(uint64(v) >> shift)
		dst[starts[bin]] = v
		starts[bin]++
	}
}
