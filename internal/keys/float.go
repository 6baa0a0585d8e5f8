package keys

import "unsafe"

// Float32ToSortable maps float32 bits to a uint32 whose unsigned order
// matches the numeric order of the float.
// Positive floats: flip sign bit. Negative floats: flip all bits.
func Float32ToSortable(u uint32) uint32 {
	if u>>31 != 0 {
		return ^u
	}
	return u | 1<<31
}

// SortableToFloat32 inverts Float32ToSortable.
func SortableToFloat32(u uint32) uint32 {
	if u>>31 != 0 {
		return u &^ (1 << 31)
	}
	return ^u
}

// Float64ToSortable maps float64 bits to a uint64 whose unsigned order
// matches the numeric order of the float.
func Float64ToSortable(u uint64) uint64 {
	if u>>63 != 0 {
		return ^u
	}
	return u | 1<<63
}

// SortableToFloat64 inverts Float64ToSortable.
func SortableToFloat64(u uint64) uint64 {
	if u>>63 != 0 {
		return u &^ (1 << 63)
	}
	return ^u
}

// FloatsToSortable32 reinterprets data as uint32 bits and transforms it in
// place. The returned slice aliases data.
func FloatsToSortable32[F ~float32](data []F) []uint32 {
	if len(data) == 0 {
		return nil
	}
	u := unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(data))), len(data))
	for i, v := range u {
		u[i] = Float32ToSortable(v)
	}
	return u
}

// SortableToFloats32 transforms u back in place and returns it as floats.
func SortableToFloats32[F ~float32](u []uint32) []F {
	if len(u) == 0 {
		return nil
	}
	for i, v := range u {
		u[i] = SortableToFloat32(v)
	}
	return unsafe.Slice((*F)(unsafe.Pointer(unsafe.SliceData(u))), len(u))
}

// FloatsToSortable64 reinterprets data as uint64 bits and transforms it in
// place. The returned slice aliases data.
func FloatsToSortable64[F ~float64](data []F) []uint64 {
	if len(data) == 0 {
		return nil
	}
	u := unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(data))), len(data))
	for i, v := range u {
		u[i] = Float64ToSortable(v)
	}
	return u
}

// SortableToFloats64 transforms u back in place and returns it as floats.
func SortableToFloats64[F ~float64](u []uint64) []F {
	if len(u) == 0 {
		return nil
	}
	for i, v := range u {
		u[i] = SortableToFloat64(v)
	}
	return unsafe.Slice((*F)(unsafe.Pointer(unsafe.SliceData(u))), len(u))
}
