package parsort

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	perrors "github.com/tamirms/parsort/errors"
	intbits "github.com/tamirms/parsort/internal/bits"
	"github.com/tamirms/parsort/internal/histogram"
	"github.com/tamirms/parsort/internal/keys"
	"github.com/tamirms/parsort/internal/offsets"
	"github.com/tamirms/parsort/internal/scatter"
	"github.com/tamirms/parsort/internal/scratch"
)

// Key is the set of key types accepted by the radix sorts.
type Key interface {
	constraints.Integer
}

// passOutcome is what RadixPass did with one digit.
type passOutcome int

const (
	// passScattered means the keys were moved to the other buffer.
	passScattered passOutcome = iota
	// passSkipped means every key has the same digit; nothing moved.
	passSkipped
)

func (o passOutcome) String() string {
	if o == passSkipped {
		return "skipped"
	}
	return "scattered"
}

// passPlan describes the work for one digit.
type passPlan struct {
	digit     int
	shift     uint
	signedTop bool // lay bins out in signed order (top digit of a signed type)
	skip      bool // single non-empty bin
}

// planPasses decides, from the whole-array digit histograms, how each digit
// in [lo, hi) is processed. The signed bin layout applies to the most
// significant digit of a signed type and to no other digit.
func planPasses[T Key](global []histogram.Counts, lo, hi int, detectPresorted bool) []passPlan {
	signed := keys.Signed[T]()
	plans := make([]passPlan, 0, hi-lo)
	for d := lo; d < hi; d++ {
		plans = append(plans, passPlan{
			digit:     d,
			shift:     keys.Shift(d),
			signedTop: signed && keys.IsTopDigit[T](d),
			skip:      detectPresorted && histogram.NonEmpty(&global[d]) <= 1,
		})
	}
	return plans
}

// lsdSorter holds the per-call state of one LSD radix sort: the chunk
// layout, the count and offset tables, and the pool of per-chunk staging
// buffers.
type lsdSorter[T Key] struct {
	cfg    *config
	runner *chunkRunner
	depth  int

	// chunkMulti[c] holds every digit histogram of chunk c in the original
	// arrangement; valid until the first scatter.
	chunkMulti  [][]histogram.Counts
	chunkCounts []histogram.Counts
	tables      []offsets.Table
	buffers     bufferPool[T]

	executed int
	skipped  int
}

func newLSDSorter[T Key](cfg *config, n int, parallel bool) *lsdSorter[T] {
	depth := cfg.bufferDepth
	if depth == 0 {
		depth = intbits.ElemsPerCacheLine(keys.Width[T]())
	}
	runner := newChunkRunner(n, cfg, parallel)
	s := &lsdSorter[T]{
		cfg:         cfg,
		runner:      runner,
		depth:       depth,
		chunkMulti:  make([][]histogram.Counts, runner.numChunks()),
		chunkCounts: make([]histogram.Counts, runner.numChunks()),
	}
	s.buffers.init(depth)
	return s
}

// sort runs digits [lo, hi) over data, using tmp as the other buffer, and
// returns whichever of the two holds the result.
func (s *lsdSorter[T]) sort(data, tmp []T, lo, hi int) []T {
	src := data
	s.runner.run(func(t chunkTask) {
		s.chunkMulti[t.index] = histogram.Multi(src[t.lo:t.hi])
	})
	global := make([]histogram.Counts, keys.NumDigits[T]())
	for _, m := range s.chunkMulti {
		for d := range global {
			histogram.Add(&global[d], &m[d])
		}
	}

	current, other := data, tmp
	for _, p := range planPasses[T](global, lo, hi, s.cfg.detectPresorted) {
		switch s.radixPass(current, other, p, global) {
		case passScattered:
			current, other = other, current
			s.executed++
		case passSkipped:
			s.skipped++
			if ce := s.cfg.logger.Check(zap.DebugLevel, "radix pass skipped"); ce != nil {
				ce.Write(zap.Int("digit", p.digit), zap.Int("keys", len(data)))
			}
		}
	}

	if ce := s.cfg.logger.Check(zap.DebugLevel, "radix sort finished"); ce != nil {
		ce.Write(
			zap.Int("keys", len(data)),
			zap.Int("chunks", s.runner.numChunks()),
			zap.Int("bufferDepth", s.depth),
			zap.Stringer("scratch", s.cfg.scratch),
			zap.Int("passes", s.executed),
			zap.Int("skipped", s.skipped),
			zap.Bool("resultInScratch", s.executed%2 == 1),
		)
	}
	return current
}

// radixPass moves every key of src to dst, ordered by digit p, stable.
//
// Phases: per-chunk histograms, one chained offset table, per-chunk
// scatter. Each parallel phase ends in a full barrier.
func (s *lsdSorter[T]) radixPass(src, dst []T, p passPlan, global []histogram.Counts) passOutcome {
	if p.skip {
		return passSkipped
	}

	switch {
	case s.executed == 0:
		// Nothing has moved yet: the chunk histograms from the initial
		// counting pass still describe each chunk.
		for c, m := range s.chunkMulti {
			s.chunkCounts[c] = m[p.digit]
		}
	case len(s.chunkCounts) == 1:
		s.chunkCounts[0] = global[p.digit]
	default:
		s.runner.run(func(t chunkTask) {
			s.chunkCounts[t.index] = histogram.Bytes(src[t.lo:t.hi], p.shift)
		})
	}

	s.tables = offsets.Chained(s.tables, s.chunkCounts, 0, p.signedTop)

	s.runner.run(func(t chunkTask) {
		if t.lo == t.hi {
			return
		}
		buf := s.buffers.get()
		scatter.Scatter(src[t.lo:t.hi], dst, &s.tables[t.index], p.shift, buf)
		s.buffers.put(buf)
	})
	return passScattered
}

// lsdSort sorts data by every digit of T and returns the buffer holding the
// result.
func lsdSort[T Key](data []T, cfg *config, parallel bool) ([]T, error) {
	if len(data) <= 1 {
		return data, nil
	}
	buf, err := scratch.Alloc[T](len(data), cfg.scratch)
	if err != nil {
		return nil, err
	}
	s := newLSDSorter[T](cfg, len(data), parallel)
	result := s.sort(data, buf.Data, 0, keys.NumDigits[T]())

	if buf.Source() == scratch.Mmap {
		if buf.Owns(result) {
			copy(data, result)
			result = data
		}
		if err := buf.Release(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// SortLsdRadix sorts integer keys with a serial least-significant-digit
// radix sort, one stable pass per byte of the key width.
//
// The sort is not in place. It returns whichever of data and an internal
// scratch buffer holds the sorted keys; afterwards the contents of data are
// unspecified unless the returned slice is data itself. The sort always
// needs O(len(data)) extra memory and has no reduced-memory fallback.
func SortLsdRadix[T Key](data []T, opts ...Option) ([]T, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return lsdSort(data, cfg, false)
}

// SortLsdRadixPar is SortLsdRadix with every pass split into chunks of the
// configured work quantum, processed concurrently. Its output is
// bit-identical to SortLsdRadix for the same input.
func SortLsdRadixPar[T Key](data []T, opts ...Option) ([]T, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return lsdSort(data, cfg, true)
}

// HistogramBytes counts the digit selected by shift over data[lo..hi]
// (inclusive). An empty range (lo > hi) yields all-zero counts. data is
// never modified. Large ranges are counted with balanced binary fan-out.
func HistogramBytes[T Key](data []T, lo, hi int, shift uint, opts ...Option) ([keys.NumBins]int, error) {
	var zero [keys.NumBins]int
	cfg, err := newConfig(opts)
	if err != nil {
		return zero, err
	}
	if !keys.ValidShift[T](shift) {
		return zero, fmt.Errorf("%w: shift %d for %d-byte keys", perrors.ErrInvalidDigit, shift, keys.Width[T]())
	}
	if lo > hi {
		return zero, nil
	}
	if lo < 0 || hi >= len(data) {
		return zero, fmt.Errorf("%w: [%d, %d] in array of length %d", perrors.ErrOutOfRange, lo, hi, len(data))
	}
	if cfg.workers == 1 {
		return histogram.Bytes(data[lo:hi+1], shift), nil
	}
	return histogram.Parallel(data[lo:hi+1], shift, cfg.parallelThreshold), nil
}

// HistogramAllBytes counts every digit of T in one read pass over data.
// Element d of the result is the histogram of digit d, least significant
// first.
func HistogramAllBytes[T Key](data []T, opts ...Option) ([][keys.NumBins]int, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.workers == 1 {
		return histogram.Multi(data), nil
	}
	return histogram.ParallelMulti(data, cfg.parallelThreshold), nil
}
