package parsort

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/tamirms/parsort/internal/keys"
)

// SortLsdRadixFloat sorts floating-point keys by radix sorting their
// order-preserving unsigned bit patterns. -0 sorts before +0, and NaNs sort
// to the ends according to their sign bit. Buffer semantics are those of
// SortLsdRadix.
func SortLsdRadixFloat[F constraints.Float](data []F, opts ...Option) ([]F, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return sortFloats(data, cfg, false)
}

// SortLsdRadixFloatPar is the parallel form of SortLsdRadixFloat.
func SortLsdRadixFloatPar[F constraints.Float](data []F, opts ...Option) ([]F, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return sortFloats(data, cfg, true)
}

func sortFloats[F constraints.Float](data []F, cfg *config, parallel bool) ([]F, error) {
	if len(data) == 0 {
		return data, nil
	}
	n := len(data)
	ptr := unsafe.Pointer(unsafe.SliceData(data))

	var zero F
	if unsafe.Sizeof(zero) == 4 {
		u := keys.FloatsToSortable32(unsafe.Slice((*float32)(ptr), n))
		out, err := lsdSort(u, cfg, parallel)
		if err != nil {
			keys.SortableToFloats32[float32](u)
			return nil, err
		}
		f := keys.SortableToFloats32[float32](out)
		return unsafe.Slice((*F)(unsafe.Pointer(unsafe.SliceData(f))), n), nil
	}

	u := keys.FloatsToSortable64(unsafe.Slice((*float64)(ptr), n))
	out, err := lsdSort(u, cfg, parallel)
	if err != nil {
		keys.SortableToFloats64[float64](u)
		return nil, err
	}
	f := keys.SortableToFloats64[float64](out)
	return unsafe.Slice((*F)(unsafe.Pointer(unsafe.SliceData(f))), n), nil
}
