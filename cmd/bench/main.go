// Bench measures sort throughput for generated key arrays and verifies every
// result.
//
// Usage:
//
//	go run ./cmd/bench -n 10000000 -type uint64 -dist random -alg lsdpar
//
// Tunables that map onto parsort options can be kept in a TOML profile:
//
//	go run ./cmd/bench -n 50000000 -profile tuned.toml -cpuprofile cpu.out
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"slices"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tamirms/parsort/internal/gen"
)

var algorithms = []string{"lsd", "lsdpar", "msd", "merge", "mergepar", "slices"}

var keyTypes = []string{"uint8", "int8", "uint16", "int16", "uint32", "int32", "uint64", "int64", "float32", "float64"}

var (
	sizeFlag = &cli.IntFlag{
		Name:  "n",
		Usage: "number of keys",
		Value: 10_000_000,
	}
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: fmt.Sprintf("key type, one of %v", keyTypes),
		Value: "uint64",
	}
	distFlag = &cli.StringFlag{
		Name:  "dist",
		Usage: fmt.Sprintf("key distribution, one of %v (integer types only)", gen.Dists),
		Value: string(gen.Random),
	}
	algFlag = &cli.StringFlag{
		Name:  "alg",
		Usage: fmt.Sprintf("algorithm, one of %v", algorithms),
		Value: "lsdpar",
	}
	repeatFlag = &cli.IntFlag{
		Name:  "repeat",
		Usage: "number of timed runs",
		Value: 3,
	}
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "generator seed",
		Value: 1,
	}
	profileFlag = &cli.StringFlag{
		Name:  "profile",
		Usage: "TOML file of sort tunables",
	}
	cpuProfileFlag = &cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "write a CPU profile of the timed runs to `FILE`",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log library debug output",
	}
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runBench(c *cli.Context) error {
	logger, err := newLogger(c.Bool(verboseFlag.Name))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !slices.Contains(algorithms, c.String(algFlag.Name)) {
		return fmt.Errorf("unknown algorithm %q", c.String(algFlag.Name))
	}
	dist, err := gen.ParseDist(c.String(distFlag.Name))
	if err != nil {
		return err
	}
	prof := defaultProfile()
	if path := c.String(profileFlag.Name); path != "" {
		if prof, err = loadProfile(path); err != nil {
			return err
		}
	}

	r := &runner{
		n:      c.Int(sizeFlag.Name),
		alg:    c.String(algFlag.Name),
		repeat: max(1, c.Int(repeatFlag.Name)),
		spec:   gen.Spec{Dist: dist, Seed: c.Uint64(seedFlag.Name)},
		opts:   prof.options(logger),
		logger: logger,
	}

	if path := c.String(cpuProfileFlag.Name); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create CPU profile: %w", err)
		}
		defer func() { _ = f.Close() }()
		r.startProfile = func() error { return pprof.StartCPUProfile(f) }
		r.stopProfile = pprof.StopCPUProfile
	}

	return r.run(c.String(typeFlag.Name))
}

var app = &cli.App{
	Name:  "bench",
	Usage: "Benchmark and verify parsort sorting algorithms",
	Flags: []cli.Flag{
		sizeFlag,
		typeFlag,
		distFlag,
		algFlag,
		repeatFlag,
		seedFlag,
		profileFlag,
		cpuProfileFlag,
		verboseFlag,
	},
	Action: runBench,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
