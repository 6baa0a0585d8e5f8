// Package parsort implements parallel sorting and merging primitives for
// large in-memory arrays of fixed-width keys.
//
// The centerpiece is a least-significant-digit radix sort that processes one
// byte per pass. Each pass counts digits per chunk, turns the counts into a
// chained offset table, and scatters every chunk into its reserved ranges
// through small per-bin staging buffers, so chunks run concurrently with no
// locks and the output is identical to the serial sort. Passes whose digit
// is the same for every key are skipped.
//
// # Basic Usage
//
// Sorting integer keys:
//
//	sorted, err := parsort.SortLsdRadixPar(keys)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// sorted is either keys or an internal scratch buffer.
//
// Stable merge sort with a comparator:
//
//	sorted, err := parsort.MergeSortStablePar(records, func(a, b Record) int {
//	    return cmp.Compare(a.Key, b.Key)
//	})
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Radix sort: radix.go (passes, SortLsdRadix, HistogramBytes), radix_parallel.go (chunking, buffer pools), radix_float.go
//   - Merging: merge.go (MergeDivideAndConquer), mergesort.go (MergeSpans, MergeSortStable)
//   - Other sorts and reductions: msd.go (SortMsdRadix), reduce.go (Sum, SequenceEqual)
//   - Configuration: options.go (Option, With* functions)
//   - Building blocks: internal/histogram, internal/offsets, internal/scatter, internal/scratch, internal/keys
//   - Test and benchmark support: internal/gen (key distributions), internal/verify (sortedness, digests)
package parsort
