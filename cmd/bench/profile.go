package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/tamirms/parsort"
)

// profile is the TOML form of the sort tunables. Zero values keep the
// library defaults.
//
//	workers = 8
//	work_quantum = 131072
//	buffer_depth = 16
//	mmap_scratch = true
type profile struct {
	Workers           int   `toml:"workers"`
	WorkQuantum       int   `toml:"work_quantum"`
	Chunks            int   `toml:"chunks"`
	BufferDepth       int   `toml:"buffer_depth"`
	ParallelThreshold int   `toml:"parallel_threshold"`
	MergeThreshold    int   `toml:"merge_threshold"`
	BaseCaseSize      int   `toml:"base_case_size"`
	MmapScratch       bool  `toml:"mmap_scratch"`
	DetectPresorted   *bool `toml:"detect_presorted"`
}

func defaultProfile() *profile {
	return &profile{}
}

func loadProfile(path string) (*profile, error) {
	p := defaultProfile()
	md, err := toml.DecodeFile(path, p)
	if err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("profile %s: unknown keys %v", path, undecoded)
	}
	return p, nil
}

// options converts the profile to parsort options. Invalid values are
// passed through so the library reports them.
func (p *profile) options(logger *zap.Logger) []parsort.Option {
	opts := []parsort.Option{parsort.WithLogger(logger)}
	if p.Workers != 0 {
		opts = append(opts, parsort.WithWorkers(p.Workers))
	}
	if p.WorkQuantum != 0 {
		opts = append(opts, parsort.WithWorkQuantum(p.WorkQuantum))
	}
	if p.Chunks != 0 {
		opts = append(opts, parsort.WithChunks(p.Chunks))
	}
	if p.BufferDepth != 0 {
		opts = append(opts, parsort.WithBufferDepth(p.BufferDepth))
	}
	if p.ParallelThreshold != 0 {
		opts = append(opts, parsort.WithParallelThreshold(p.ParallelThreshold))
	}
	if p.MergeThreshold != 0 {
		opts = append(opts, parsort.WithMergeThreshold(p.MergeThreshold))
	}
	if p.BaseCaseSize != 0 {
		opts = append(opts, parsort.WithBaseCaseSize(p.BaseCaseSize))
	}
	if p.MmapScratch {
		opts = append(opts, parsort.WithMmapScratch())
	}
	if p.DetectPresorted != nil {
		opts = append(opts, parsort.WithPresortedDetection(*p.DetectPresorted))
	}
	return opts
}
