package parsort

import (
	"github.com/tamirms/parsort/internal/histogram"
	"github.com/tamirms/parsort/internal/keys"
	"github.com/tamirms/parsort/internal/offsets"
)

// msdCutoff is the bucket size below which the MSD sort switches to
// insertion sort.
const msdCutoff = 32

// SortMsdRadix sorts data in place with a serial most-significant-digit
// radix sort. Each level permutes keys into their buckets by following
// displacement cycles (American flag sort), then sorts every bucket by the
// next digit. Small buckets are insertion sorted. The sort is not stable.
func SortMsdRadix[T Key](data []T, opts ...Option) error {
	if _, err := newConfig(opts); err != nil {
		return err
	}
	msdSort(data, keys.NumDigits[T]()-1)
	return nil
}

func insertionSortKeys[T Key](x []T) {
	for i := 1; i < len(x); i++ {
		v := x[i]
		j := i
		for j > 0 && v < x[j-1] {
			x[j] = x[j-1]
			j--
		}
		x[j] = v
	}
}

// msdSort sorts x by digits d down to 0. The largest bucket of each level
// is sorted by iteration instead of recursion, bounding the stack to one
// frame per digit per smaller bucket.
func msdSort[T Key](x []T, d int) {
	signed := keys.Signed[T]()
Loop:
	if len(x) < msdCutoff {
		insertionSortKeys(x)
		return
	}
	if d < 0 {
		return
	}

	shift := keys.Shift(d)
	counts := histogram.Bytes(x, shift)
	if histogram.NonEmpty(&counts) == 1 {
		d--
		goto Loop
	}

	order := offsets.Order(signed && keys.IsTopDigit[T](d))
	var end [keys.NumBins]int
	used, biggest, biggestN, last := 0, 0, 0, 0
	for _, b := range order {
		n := counts[b]
		if n == 0 {
			continue
		}
		used += n
		end[b] = used
		if n > biggestN {
			biggest, biggestN = int(b), n
		}
		last = int(b)
	}

	// Each round of the outer loop completes one bucket, starting at i.
	n := len(x) - counts[last]
	for i := 0; i < n; {
		v := x[i]
		var b uint8
		for {
			b = keys.Digit(v, shift)
			e := end[b] - 1
			end[b] = e
			if e <= i {
				break
			}
			v, x[e] = x[e], v
		}
		x[i] = v
		i += counts[b]
	}

	if d == 0 {
		return
	}
	used = 0
	var rest []T
	for _, b := range order {
		n := counts[b]
		if n > 1 {
			sub := x[used : used+n]
			if int(b) == biggest {
				rest = sub
			} else {
				msdSort(sub, d-1)
			}
		}
		used += n
	}
	x = rest
	d--
	goto Loop
}
