// Package gen produces deterministic key distributions for tests and
// benchmarks.
package gen

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"

	intbits "github.com/tamirms/parsort/internal/bits"
)

// Dist names a key distribution.
type Dist string

const (
	Random    Dist = "random"    // uniform over the full key range
	Bounded   Dist = "bounded"   // uniform over [0, Bound)
	Hashed    Dist = "hashed"    // xxh3 of the element index
	Sorted    Dist = "sorted"    // random, then ascending
	Reverse   Dist = "reverse"   // random, then descending
	Sawtooth  Dist = "sawtooth"  // i % Bound
	AllEqual  Dist = "allequal"  // every key is 42
	FewUnique Dist = "fewunique" // eight distinct random values
)

// Dists lists every distribution.
var Dists = []Dist{Random, Bounded, Hashed, Sorted, Reverse, Sawtooth, AllEqual, FewUnique}

// Spec describes one generated array.
type Spec struct {
	Dist  Dist
	Seed  uint64
	Bound uint32 // for Bounded and Sawtooth; 0 means 1000
}

// ParseDist validates a distribution name.
func ParseDist(name string) (Dist, error) {
	d := Dist(name)
	if slices.Contains(Dists, d) {
		return d, nil
	}
	return "", fmt.Errorf("unknown distribution %q", name)
}

// Fill overwrites dst with keys drawn from spec.
func Fill[T constraints.Integer](dst []T, spec Spec) {
	rng := rand.New(rand.NewPCG(spec.Seed, spec.Seed^0x9E3779B97F4A7C15))
	bound := spec.Bound
	if bound == 0 {
		bound = 1000
	}

	switch spec.Dist {
	case Bounded:
		for i := range dst {
			dst[i] = T(intbits.FastRange32(rng.Uint64(), bound))
		}
	case Hashed:
		var buf [8]byte
		for i := range dst {
			binary.LittleEndian.PutUint64(buf[:], uint64(i))
			dst[i] = T(xxh3.HashSeed(buf[:], spec.Seed))
		}
	case Sawtooth:
		for i := range dst {
			dst[i] = T(uint32(i) % bound)
		}
	case AllEqual:
		for i := range dst {
			dst[i] = 42
		}
	case FewUnique:
		var vals [8]T
		for i := range vals {
			vals[i] = T(rng.Uint64())
		}
		for i := range dst {
			dst[i] = vals[rng.IntN(len(vals))]
		}
	case Sorted, Reverse:
		for i := range dst {
			dst[i] = T(rng.Uint64())
		}
		slices.Sort(dst)
		if spec.Dist == Reverse {
			slices.Reverse(dst)
		}
	default:
		for i := range dst {
			dst[i] = T(rng.Uint64())
		}
	}
}

// Make allocates and fills n keys.
func Make[T constraints.Integer](n int, spec Spec) []T {
	dst := make([]T, n)
	Fill(dst, spec)
	return dst
}

// Floats fills dst with float64 values of mixed sign and magnitude,
// including signed zeros and infinities.
func Floats(dst []float64, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	for i := range dst {
		switch rng.IntN(16) {
		case 0:
			dst[i] = 0
		case 1:
			dst[i] = math.Copysign(0, -1)
		case 2:
			dst[i] = math.Inf(1 - 2*rng.IntN(2))
		case 3:
			dst[i] = float64(rng.IntN(5)) - 2
		default:
			dst[i] = (rng.Float64() - 0.5) * float64(uint64(1)<<rng.IntN(60))
		}
	}
}
