package bits

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"testing"
)

const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// TestFastRange32 checks the properties the bounded key generator relies
// on: results stay below n and preserve hash order.
func TestFastRange32(t *testing.T) {
	rng := newTestRNG(t)
	for i := range 10000 {
		n := rng.Uint32N(math.MaxUint32) + 1
		h1, h2 := rng.Uint64(), rng.Uint64()
		if h1 > h2 {
			h1, h2 = h2, h1
		}
		r1, r2 := FastRange32(h1, n), FastRange32(h2, n)
		if r2 >= n || r1 > r2 {
			t.Fatalf("iter %d: n=%d gave %d, %d for ordered hashes", i, n, r1, r2)
		}
	}

	for _, tc := range []struct {
		h    uint64
		n    uint32
		want uint32
	}{
		{0xDEADBEEF, 0, 0},
		{math.MaxUint64, 1, 0},
		{0, 1000, 0},
		{math.MaxUint64, 1000, 999},
		{math.MaxUint64, math.MaxUint32, math.MaxUint32 - 1},
		{1 << 63, 256, 128},
	} {
		if got := FastRange32(tc.h, tc.n); got != tc.want {
			t.Errorf("FastRange32(%#x, %d) = %d, want %d", tc.h, tc.n, got, tc.want)
		}
	}
}

func TestElemsPerCacheLine(t *testing.T) {
	if CacheLineBytes < 32 {
		t.Fatalf("CacheLineBytes = %d, implausibly small", CacheLineBytes)
	}
	if got := ElemsPerCacheLine(4); got != CacheLineBytes/4 {
		t.Errorf("ElemsPerCacheLine(4) = %d, want %d", got, CacheLineBytes/4)
	}
	if got := ElemsPerCacheLine(1); got != CacheLineBytes {
		t.Errorf("ElemsPerCacheLine(1) = %d, want %d", got, CacheLineBytes)
	}
	for _, size := range []int{0, -1, CacheLineBytes, 4 * CacheLineBytes} {
		if got := ElemsPerCacheLine(size); got != 1 {
			t.Errorf("ElemsPerCacheLine(%d) = %d, want 1", size, got)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 5, 0}, {1, 5, 1}, {5, 5, 1}, {6, 5, 2}, {100, 1, 100},
	}
	for _, tc := range cases {
		if got := CeilDiv(tc.a, tc.b); got != tc.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
