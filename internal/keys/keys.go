// Package keys describes fixed-width radix keys: their width in digits,
// their signedness, byte digit extraction, and the monotonic bit transform
// that lets IEEE floats be sorted as unsigned integers.
package keys

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// DigitBits is the number of key bits consumed per radix digit.
const DigitBits = 8

// NumBins is the number of distinct digit values.
const NumBins = 1 << DigitBits

// Width returns the size of T in bytes, which is also the number of
// byte digits in a key of type T.
func Width[T constraints.Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// NumDigits returns the number of LSD passes needed for keys of type T.
func NumDigits[T constraints.Integer]() int {
	return Width[T]()
}

// Signed reports whether T is a signed integer type.
func Signed[T constraints.Integer]() bool {
	var zero T
	return ^zero < zero
}

// Digit returns the byte of v selected by shift.
//
// Signed values are sign extended by the uint64 conversion, which only
// affects bits above the type's width; shift is always below it.
func Digit[T constraints.Integer](v T, shift uint) uint8 {
	return uint8(uint64(v) >> shift)
}

// Shift returns the bit shift of the digit at position d (0 = least significant).
func Shift(d int) uint {
	return uint(d * DigitBits)
}

// ValidShift reports whether shift selects a whole byte digit of T.
func ValidShift[T constraints.Integer](shift uint) bool {
	return shift%DigitBits == 0 && int(shift) < Width[T]()*DigitBits
}

// IsTopDigit reports whether digit d is the most significant digit of T.
func IsTopDigit[T constraints.Integer](d int) bool {
	return d == NumDigits[T]()-1
}
