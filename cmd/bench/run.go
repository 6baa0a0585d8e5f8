package main

import (
	"cmp"
	"fmt"
	"runtime"
	"slices"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tamirms/parsort"
	"github.com/tamirms/parsort/internal/gen"
	"github.com/tamirms/parsort/internal/verify"
)

type runner struct {
	n      int
	alg    string
	repeat int
	spec   gen.Spec
	opts   []parsort.Option
	logger *zap.Logger

	startProfile func() error
	stopProfile  func()
}

// getMaxRSS returns the peak resident set size in bytes.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// macOS reports bytes, Linux kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

func (r *runner) run(keyType string) error {
	switch keyType {
	case "uint8":
		return runInts[uint8](r)
	case "int8":
		return runInts[int8](r)
	case "uint16":
		return runInts[uint16](r)
	case "int16":
		return runInts[int16](r)
	case "uint32":
		return runInts[uint32](r)
	case "int32":
		return runInts[int32](r)
	case "uint64":
		return runInts[uint64](r)
	case "int64":
		return runInts[int64](r)
	case "float32":
		return runFloats[float32](r)
	case "float64":
		return runFloats[float64](r)
	}
	return fmt.Errorf("unknown key type %q", keyType)
}

// timed runs sort repeat times over fresh copies of input and checks each
// result with check.
func timed[T any](r *runner, input []T, sort func([]T) ([]T, error), check func([]T) error) error {
	data := make([]T, len(input))
	if r.startProfile != nil {
		if err := r.startProfile(); err != nil {
			return fmt.Errorf("start CPU profile: %w", err)
		}
		defer r.stopProfile()
	}

	baselineRSS := getMaxRSS()
	var best time.Duration
	for i := range r.repeat {
		copy(data, input)
		runtime.GC()

		start := time.Now()
		out, err := sort(data)
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("%s: %w", r.alg, err)
		}
		if err := check(out); err != nil {
			return fmt.Errorf("%s produced a wrong result: %w", r.alg, err)
		}
		if i == 0 || elapsed < best {
			best = elapsed
		}
		r.logger.Info("run",
			zap.Int("repeat", i),
			zap.Duration("elapsed", elapsed),
			zap.Float64("mkeysPerSec", float64(len(input))/elapsed.Seconds()/1e6),
		)
	}

	r.logger.Info("summary",
		zap.String("alg", r.alg),
		zap.Int("keys", len(input)),
		zap.String("dist", string(r.spec.Dist)),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		zap.Duration("best", best),
		zap.Float64("mkeysPerSec", float64(len(input))/best.Seconds()/1e6),
		zap.Uint64("rssGrowthBytes", getMaxRSS()-baselineRSS),
	)
	return nil
}

func runInts[T parsort.Key](r *runner) error {
	r.logger.Info("generating keys", zap.Int("n", r.n), zap.String("dist", string(r.spec.Dist)))
	input := gen.Make[T](r.n, r.spec)
	want := verify.Fingerprint(input)
	check := func(out []T) error { return verify.Check(out, want) }

	var sort func([]T) ([]T, error)
	switch r.alg {
	case "lsd":
		sort = func(d []T) ([]T, error) { return parsort.SortLsdRadix(d, r.opts...) }
	case "lsdpar":
		sort = func(d []T) ([]T, error) { return parsort.SortLsdRadixPar(d, r.opts...) }
	case "msd":
		sort = func(d []T) ([]T, error) { return d, parsort.SortMsdRadix(d, r.opts...) }
	case "merge":
		sort = func(d []T) ([]T, error) { return parsort.MergeSortStable(d, cmp.Compare[T], r.opts...) }
	case "mergepar":
		sort = func(d []T) ([]T, error) { return parsort.MergeSortStablePar(d, cmp.Compare[T], r.opts...) }
	default:
		sort = func(d []T) ([]T, error) { slices.Sort(d); return d, nil }
	}
	return timed(r, input, sort, check)
}

func runFloats[F float32 | float64](r *runner) error {
	r.logger.Info("generating keys", zap.Int("n", r.n), zap.String("dist", "floats"))
	src := make([]float64, r.n)
	gen.Floats(src, r.spec.Seed)
	input := make([]F, r.n)
	for i, v := range src {
		input[i] = F(v)
	}
	check := func(out []F) error {
		if len(out) != len(input) {
			return fmt.Errorf("length %d, want %d", len(out), len(input))
		}
		if i := verify.Sorted(out); i >= 0 {
			return fmt.Errorf("out of order at index %d", i)
		}
		return nil
	}

	var sort func([]F) ([]F, error)
	switch r.alg {
	case "lsd":
		sort = func(d []F) ([]F, error) { return parsort.SortLsdRadixFloat(d, r.opts...) }
	case "lsdpar":
		sort = func(d []F) ([]F, error) { return parsort.SortLsdRadixFloatPar(d, r.opts...) }
	case "merge":
		sort = func(d []F) ([]F, error) { return parsort.MergeSortStable(d, cmp.Compare[F], r.opts...) }
	case "mergepar":
		sort = func(d []F) ([]F, error) { return parsort.MergeSortStablePar(d, cmp.Compare[F], r.opts...) }
	case "slices":
		sort = func(d []F) ([]F, error) { slices.Sort(d); return d, nil }
	default:
		return fmt.Errorf("algorithm %q does not sort floats", r.alg)
	}
	return timed(r, input, sort, check)
}
