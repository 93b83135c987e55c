package benchmarks

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"

	primes "github.com/StappsWorld/Primes"
)

var benchLimits = []uint64{100_000, 1_000_000, 10_000_000}

// Known counts let every benchmark double as a correctness check.
var wantCounts = map[uint64]uint64{
	100_000:    9_592,
	1_000_000:  78_498,
	10_000_000: 664_579,
}

// ============================================================================
// Full sieve run: this package vs. alternative storage layouts
// ============================================================================

func BenchmarkSieve_Packed(b *testing.B) {
	for _, limit := range benchLimits {
		b.Run(fmt.Sprintf("limit_%d", limit), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s, err := primes.NewSieve(limit)
				if err != nil {
					b.Fatal(err)
				}
				s.Run()
				if got := s.Count(); got != wantCounts[limit] {
					b.Fatalf("count=%d, want %d", got, wantCounts[limit])
				}
			}
		})
	}
}

// bitsetSieve is a flag-per-integer sieve over bits-and-blooms/bitset, the
// layout a straight translation of the textbook algorithm would use. A set
// bit means "proven composite".
func bitsetSieve(limit uint) uint {
	composite := bitset.New(limit)
	var count uint
	for n := uint(2); n < limit; n++ {
		if composite.Test(n) {
			continue
		}
		count++
		for m := n * n; m < limit; m += n {
			composite.Set(m)
		}
	}
	return count
}

func BenchmarkSieve_Bitset(b *testing.B) {
	for _, limit := range benchLimits {
		b.Run(fmt.Sprintf("limit_%d", limit), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if got := bitsetSieve(uint(limit)); uint64(got) != wantCounts[limit] {
					b.Fatalf("count=%d, want %d", got, wantCounts[limit])
				}
			}
		})
	}
}

// boolSieve is the naive byte-per-integer layout, 8x the memory of a bitset
// and 16x that of odd-only packed storage.
func boolSieve(limit uint64) uint64 {
	composite := make([]bool, limit)
	var count uint64
	for n := uint64(2); n < limit; n++ {
		if composite[n] {
			continue
		}
		count++
		for m := n * n; m < limit; m += n {
			composite[m] = true
		}
	}
	return count
}

func BenchmarkSieve_BoolSlice(b *testing.B) {
	for _, limit := range benchLimits {
		b.Run(fmt.Sprintf("limit_%d", limit), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if got := boolSieve(limit); got != wantCounts[limit] {
					b.Fatalf("count=%d, want %d", got, wantCounts[limit])
				}
			}
		})
	}
}

// ============================================================================
// Harness throughput
// ============================================================================

func BenchmarkHarness_Waves(b *testing.B) {
	threads := runtime.NumCPU()
	b.Run(fmt.Sprintf("threads_%d", threads), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			res, err := primes.RunBenchmark(primes.Options{
				Limit:    1_000_000,
				Threads:  threads,
				Duration: 50 * time.Millisecond,
			})
			if err != nil {
				b.Fatal(err)
			}
			b.ReportMetric(float64(res.Passes)/res.Elapsed.Seconds(), "passes/s")
		}
	})
}

// ============================================================================
// Fingerprint hashing: xxh3 (used by the package) vs. xxhash
// ============================================================================

func fingerprintWords() []uint64 {
	s, err := primes.NewSieve(1_000_000)
	if err != nil {
		panic(err)
	}
	s.Run()

	// Reconstruct the packed layout from the public prime list so both
	// hash benchmarks digest identical bytes.
	words := make([]uint64, (1_000_000/2+63)/64)
	for _, p := range s.Primes() {
		if p == 2 {
			continue
		}
		idx := p >> 1
		words[idx>>6] |= 1 << (idx & 63)
	}
	return words
}

func wordsToBytes(words []uint64) []byte {
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return buf
}

func BenchmarkFingerprint_XXH3(b *testing.B) {
	data := wordsToBytes(fingerprintWords())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		xxh3.Hash(data)
	}
}

func BenchmarkFingerprint_XXHash(b *testing.B) {
	data := wordsToBytes(fingerprintWords())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		xxhash.Sum64(data)
	}
}
