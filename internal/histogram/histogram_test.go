package histogram

import (
	"encoding/binary"
	"hash/fnv"
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

// linearCount is the trivial reference: one pass per bin.
func linearCount(src []int64, shift uint) Counts {
	var c Counts
	for b := range c {
		for _, v := range src {
			if int(uint8(uint64(v)>>shift)) == b {
				c[b]++
			}
		}
	}
	return c
}

func TestBytesExample(t *testing.T) {
	c := Bytes([]uint8{0x00, 0x01, 0x01, 0xFF}, 0)
	if c[0x00] != 1 || c[0x01] != 2 || c[0xFF] != 1 {
		t.Fatalf("counts = [0]=%d [1]=%d [255]=%d, want 1,2,1", c[0x00], c[0x01], c[0xFF])
	}
	if Total(&c) != 4 || NonEmpty(&c) != 3 {
		t.Fatalf("Total=%d NonEmpty=%d, want 4 and 3", Total(&c), NonEmpty(&c))
	}
}

func TestBytesEmpty(t *testing.T) {
	c := Bytes([]uint32(nil), 8)
	if Total(&c) != 0 {
		t.Fatalf("empty input gave total %d", Total(&c))
	}
}

func TestBytesMatchesLinearScan(t *testing.T) {
	rng := newTestRNG(t)
	src := make([]int64, 3000)
	for i := range src {
		src[i] = int64(rng.Uint64())
	}
	for d := 0; d < 8; d++ {
		shift := uint(d * 8)
		got := Bytes(src, shift)
		want := linearCount(src, shift)
		if got != want {
			t.Fatalf("digit %d: histogram mismatch", d)
		}
		if Total(&got) != len(src) {
			t.Fatalf("digit %d: total %d, want %d", d, Total(&got), len(src))
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	rng := newTestRNG(t)
	src := make([]uint32, 100_003)
	for i := range src {
		src[i] = rng.Uint32()
	}
	for _, threshold := range []int{0, 1, 1000, 1 << 15, 1 << 20} {
		for _, shift := range []uint{0, 8, 16, 24} {
			if Parallel(src, shift, threshold) != Bytes(src, shift) {
				t.Fatalf("threshold %d shift %d: parallel histogram differs", threshold, shift)
			}
		}
	}
}

func TestMultiMatchesPerDigit(t *testing.T) {
	rng := newTestRNG(t)
	check := func(name string, multi []Counts, single func(shift uint) Counts) {
		t.Helper()
		for d := range multi {
			if multi[d] != single(uint(d*8)) {
				t.Fatalf("%s: digit %d differs", name, d)
			}
		}
	}

	u8 := make([]uint8, 777)
	i16 := make([]int16, 777)
	i32 := make([]int32, 777)
	u64 := make([]uint64, 777)
	for i := range u8 {
		r := rng.Uint64()
		u8[i], i16[i], i32[i], u64[i] = uint8(r), int16(r), int32(r), r
	}
	check("uint8", Multi(u8), func(s uint) Counts { return Bytes(u8, s) })
	check("int16", Multi(i16), func(s uint) Counts { return Bytes(i16, s) })
	check("int32", Multi(i32), func(s uint) Counts { return Bytes(i32, s) })
	check("uint64", Multi(u64), func(s uint) Counts { return Bytes(u64, s) })
	check("uint64/parallel", ParallelMulti(u64, 64), func(s uint) Counts { return Bytes(u64, s) })

	if len(Multi(u64)) != 8 || len(Multi(u8)) != 1 {
		t.Fatal("wrong number of digit tables")
	}
}

func TestInputNotMutated(t *testing.T) {
	src := []uint16{5, 4, 3, 2, 1, 0xFFFF}
	before := append([]uint16(nil), src...)
	_ = Parallel(src, 8, 2)
	_ = ParallelMulti(src, 2)
	for i := range src {
		if src[i] != before[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
