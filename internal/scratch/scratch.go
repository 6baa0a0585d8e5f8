// Package scratch provides the O(N) auxiliary buffers used by the
// out-of-place sorts, either from the Go heap or from an anonymous memory
// mapping that is released eagerly instead of waiting for the collector.
package scratch

import (
	"fmt"
	"unsafe"

	"github.com/edsrzf/mmap-go"

	perrors "github.com/tamirms/parsort/errors"
)

// Source selects where scratch memory comes from.
type Source int

const (
	// Heap allocates with make. Allocation failure is fatal to the process.
	Heap Source = iota
	// Mmap maps an anonymous private region and unmaps it on Release.
	Mmap
)

// String implements fmt.Stringer.
func (s Source) String() string {
	switch s {
	case Heap:
		return "heap"
	case Mmap:
		return "mmap"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Buffer is a scratch slice plus whatever is needed to give it back.
type Buffer[T any] struct {
	Data   []T
	source Source
	region mmap.MMap
}

// Alloc returns a scratch buffer of n elements.
func Alloc[T any](n int, src Source) (*Buffer[T], error) {
	if src != Mmap || n == 0 {
		return &Buffer[T]{Data: make([]T, n), source: Heap}, nil
	}

	var zero T
	size := uintptr(n) * unsafe.Sizeof(zero)
	if size == 0 || size/unsafe.Sizeof(zero) != uintptr(n) {
		return nil, fmt.Errorf("%w: %d elements of %d bytes", perrors.ErrAllocation, n, unsafe.Sizeof(zero))
	}
	region, err := mmap.MapRegion(nil, int(size), mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", perrors.ErrAllocation, size, err)
	}
	adviseScratch(region)

	data := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(region))), n)
	return &Buffer[T]{Data: data, source: Mmap, region: region}, nil
}

// Source reports where the buffer's memory came from.
func (b *Buffer[T]) Source() Source {
	return b.source
}

// Owns reports whether s points into the buffer's memory.
func (b *Buffer[T]) Owns(s []T) bool {
	if len(s) == 0 || len(b.Data) == 0 {
		return false
	}
	return unsafe.SliceData(s) == unsafe.SliceData(b.Data)
}

// Release returns mapped memory to the OS. Data must not be used afterwards.
// Heap buffers are simply dropped.
func (b *Buffer[T]) Release() error {
	b.Data = nil
	if b.region == nil {
		return nil
	}
	region := b.region
	b.region = nil
	if err := region.Unmap(); err != nil {
		return fmt.Errorf("unmap scratch: %w", err)
	}
	return nil
}
