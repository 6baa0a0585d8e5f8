package parsort

import (
	"fmt"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	perrors "github.com/tamirms/parsort/errors"
	"github.com/tamirms/parsort/internal/scratch"
)

const (
	// DefaultParallelThreshold is the element count below which binary
	// fan-out operations (histograms, sums, comparisons) run sequentially.
	DefaultParallelThreshold = 1 << 15

	// DefaultWorkQuantum is the radix sort chunk size: one task per chunk.
	DefaultWorkQuantum = 1 << 16

	// DefaultMergeThreshold is the combined span length at or below which
	// the divide-and-conquer merge falls back to a linear merge.
	DefaultMergeThreshold = 4096

	// DefaultBaseCaseSize is the run length merge sort sorts by insertion
	// before merging.
	DefaultBaseCaseSize = 32

	// maxBufferDepth bounds the derandomization depth: 256 bins of this many
	// elements must stay cache resident for the staging to pay off.
	maxBufferDepth = 1024
)

// Option is a functional option for configuring a single call.
type Option func(*config)

type config struct {
	parallelThreshold int
	workQuantum       int
	chunks            int // explicit chunk count, 0 derives it from workQuantum
	workers           int
	bufferDepth       int // 0 means one cache line of elements
	mergeThreshold    int
	baseCaseSize      int
	detectPresorted   bool
	scratch           scratch.Source
	logger            *zap.Logger
}

func defaultConfig() *config {
	return &config{
		parallelThreshold: DefaultParallelThreshold,
		workQuantum:       DefaultWorkQuantum,
		workers:           runtime.GOMAXPROCS(0),
		mergeThreshold:    DefaultMergeThreshold,
		baseCaseSize:      DefaultBaseCaseSize,
		detectPresorted:   true,
		scratch:           scratch.Heap,
		logger:            zap.NewNop(),
	}
}

// newConfig applies opts over the defaults and validates the result.
func newConfig(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	var errs error
	if c.parallelThreshold < 1 {
		errs = multierr.Append(errs, fmt.Errorf("parallel threshold %d < 1", c.parallelThreshold))
	}
	if c.workQuantum < 1 {
		errs = multierr.Append(errs, fmt.Errorf("work quantum %d < 1", c.workQuantum))
	}
	if c.chunks < 0 {
		errs = multierr.Append(errs, fmt.Errorf("chunk count %d < 0", c.chunks))
	}
	if c.workers < 1 {
		errs = multierr.Append(errs, fmt.Errorf("workers %d < 1", c.workers))
	}
	if c.bufferDepth < 0 || c.bufferDepth > maxBufferDepth {
		errs = multierr.Append(errs, fmt.Errorf("buffer depth %d outside [0, %d]", c.bufferDepth, maxBufferDepth))
	}
	if c.mergeThreshold < 1 {
		errs = multierr.Append(errs, fmt.Errorf("merge threshold %d < 1", c.mergeThreshold))
	}
	if c.baseCaseSize < 1 {
		errs = multierr.Append(errs, fmt.Errorf("base case size %d < 1", c.baseCaseSize))
	}
	if c.logger == nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: logger", perrors.ErrNilInput))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", perrors.ErrInvalidConfig, errs)
	}
	return nil
}

// WithParallelThreshold sets the element count below which balanced binary
// fan-out stops splitting and runs sequentially.
func WithParallelThreshold(n int) Option {
	return func(c *config) {
		c.parallelThreshold = n
	}
}

// WithWorkQuantum sets the radix sort chunk size. The parallel sort launches
// one task per chunk and per phase.
func WithWorkQuantum(n int) Option {
	return func(c *config) {
		c.workQuantum = n
	}
}

// WithChunks fixes the number of radix sort chunks, overriding the work
// quantum. More chunks than elements is allowed; the excess chunks are empty.
func WithChunks(q int) Option {
	return func(c *config) {
		c.chunks = q
	}
}

// WithWorkers limits how many tasks run at once. One worker makes every
// operation run on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithBufferDepth sets the per-bin derandomization buffer depth in elements.
// Zero (the default) sizes each bin to one cache line; one disables staging.
func WithBufferDepth(d int) Option {
	return func(c *config) {
		c.bufferDepth = d
	}
}

// WithMergeThreshold sets the combined span length at or below which
// merging is done by a linear two-pointer merge.
func WithMergeThreshold(n int) Option {
	return func(c *config) {
		c.mergeThreshold = n
	}
}

// WithBaseCaseSize sets the run length merge sort sorts by insertion.
func WithBaseCaseSize(n int) Option {
	return func(c *config) {
		c.baseCaseSize = n
	}
}

// WithPresortedDetection enables or disables skipping radix passes whose
// digit is the same for every key. Enabled by default.
func WithPresortedDetection(enabled bool) Option {
	return func(c *config) {
		c.detectPresorted = enabled
	}
}

// WithMmapScratch takes radix sort scratch memory from an anonymous memory
// mapping that is unmapped before the call returns. The sorted result is
// then always delivered in the caller's slice.
func WithMmapScratch() Option {
	return func(c *config) {
		c.scratch = scratch.Mmap
	}
}

// WithLogger sets the logger used for debug tracing. Defaults to a no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
