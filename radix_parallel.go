package parsort

import (
	"sync"

	"golang.org/x/sync/errgroup"

	intbits "github.com/tamirms/parsort/internal/bits"
	"github.com/tamirms/parsort/internal/scatter"
)

// chunkTask is the immutable argument of one per-chunk task: chunk index
// and the half-open element range [lo, hi) it owns.
type chunkTask struct {
	index int
	lo    int
	hi    int
}

// chunkRunner splits [0, n) into contiguous chunks and runs one phase of
// work over all of them. Every run ends in a full barrier: no task of the
// next phase starts before every task of this one has finished.
type chunkRunner struct {
	tasks    []chunkTask
	workers  int
	parallel bool
}

// chunkLayout returns the chunk ranges for n elements. Chunk i covers
// [min(i*size, n), min((i+1)*size, n)) with size = ceil(n/q), so trailing
// chunks may be empty when q does not divide n evenly or q > n.
func chunkLayout(n, q int) []chunkTask {
	if q < 1 {
		q = 1
	}
	size := intbits.CeilDiv(n, q)
	tasks := make([]chunkTask, q)
	for i := range tasks {
		lo := min(i*size, n)
		hi := min(lo+size, n)
		tasks[i] = chunkTask{index: i, lo: lo, hi: hi}
	}
	return tasks
}

func newChunkRunner(n int, cfg *config, parallel bool) *chunkRunner {
	q := 1
	if parallel {
		q = cfg.chunks
		if q == 0 {
			q = max(1, intbits.CeilDiv(n, cfg.workQuantum))
		}
	}
	return &chunkRunner{
		tasks:    chunkLayout(n, q),
		workers:  cfg.workers,
		parallel: parallel && cfg.workers > 1,
	}
}

func (r *chunkRunner) numChunks() int {
	return len(r.tasks)
}

// run calls phase once per chunk and returns when all calls have returned.
func (r *chunkRunner) run(phase func(chunkTask)) {
	if !r.parallel || len(r.tasks) == 1 {
		for _, t := range r.tasks {
			phase(t)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(r.workers)
	for _, t := range r.tasks {
		g.Go(func() error {
			phase(t)
			return nil
		})
	}
	_ = g.Wait()
}

// bufferPool recycles scatter staging areas between chunk tasks. A buffer
// is held by exactly one task between get and put.
type bufferPool[T any] struct {
	pool sync.Pool
}

func (p *bufferPool[T]) init(depth int) {
	p.pool.New = func() any {
		return scatter.NewBuffers[T](depth)
	}
}

func (p *bufferPool[T]) get() *scatter.Buffers[T] {
	return p.pool.Get().(*scatter.Buffers[T])
}

func (p *bufferPool[T]) put(b *scatter.Buffers[T]) {
	b.Reset()
	p.pool.Put(b)
}
