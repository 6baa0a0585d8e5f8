package parsort

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/tamirms/parsort/internal/gen"
	"github.com/tamirms/parsort/internal/verify"
)

const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

// newTestRNG returns a generator seeded from the test name, so every test
// and subtest draws a different but reproducible stream.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// testSizes covers the empty and single-element cases, sizes around the
// staging buffer depth, and sizes spanning several work quanta.
var testSizes = []int{0, 1, 2, 7, 31, 32, 33, 255, 256, 257, 1000, 4097, 70000}

// makeKeys draws n keys of distribution d, seeded from the test name.
func makeKeys[T Key](t testing.TB, n int, d gen.Dist) []T {
	t.Helper()
	return gen.Make[T](n, gen.Spec{Dist: d, Seed: newTestRNG(t).Uint64()})
}

// requireSortedPermutation fails t unless got is the sorted form of input.
func requireSortedPermutation[T Key](t testing.TB, got, input []T) {
	t.Helper()
	if len(got) != len(input) {
		t.Fatalf("length %d, want %d", len(got), len(input))
	}
	if err := verify.Check(got, verify.Fingerprint(input)); err != nil {
		t.Fatal(err)
	}
	want := slices.Clone(input)
	slices.Sort(want)
	if verify.Digest(got) != verify.Digest(want) {
		t.Fatal("result differs from slices.Sort")
	}
}

// tagged is a key carrying its original position, for stability checks.
type tagged struct {
	key int32
	pos int
}

func compareTagged(a, b tagged) int {
	switch {
	case a.key < b.key:
		return -1
	case a.key > b.key:
		return 1
	}
	return 0
}

// makeTagged draws n tagged records with keys in [0, distinct).
func makeTagged(rng *rand.Rand, n, distinct int) []tagged {
	out := make([]tagged, n)
	for i := range out {
		out[i] = tagged{key: int32(rng.IntN(distinct)), pos: i}
	}
	return out
}

// requireStableOrder fails t unless s is sorted by key with equal keys in
// ascending original position.
func requireStableOrder(t testing.TB, s []tagged) {
	t.Helper()
	for i := 1; i < len(s); i++ {
		a, b := s[i-1], s[i]
		if a.key > b.key {
			t.Fatalf("out of order at %d: key %d after %d", i, b.key, a.key)
		}
		if a.key == b.key && a.pos > b.pos {
			t.Fatalf("unstable at %d: key %d, position %d after %d", i, a.key, b.pos, a.pos)
		}
	}
}
