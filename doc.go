// Package primes computes prime numbers with a bit-packed Sieve of
// Eratosthenes and measures sieve throughput with a multi-threaded
// benchmark harness.
//
// # Architecture
//
// The sieve uses two key optimizations for minimal memory traffic:
//
// Odd-only storage: even numbers other than 2 are never prime, so the sieve
// tracks one bit per odd integer. The bit for odd n lives at index n/2 in a
// packed []uint64 array, halving memory and doubling the useful density of
// every cache line the elimination loop touches. The value 2 is handled as a
// special case and never consumes a bit.
//
// Square-bounded elimination: each prime factor f starts clearing at f*f
// rather than 2*f, because every smaller multiple of f has a smaller prime
// factor and was already cleared. The factor scan stops at the exact integer
// square root of the limit, computed without floating point so the bound
// never under-shoots for large limits.
//
// # Sieve Lifecycle
//
// A [Sieve] has exactly two observable states: freshly constructed (every
// candidate still marked potentially prime) and swept (bits reflect true
// primality). [Sieve.Run] is the single transition between them:
//
//	s, err := primes.NewSieve(1_000_000)
//	if err != nil { ... }
//	s.Run()
//	fmt.Println(s.Count()) // 78498
//
// Calling [Sieve.Count] or [Sieve.IsPrime] before [Sieve.Run] yields
// meaningless (too-high) results but is harmless. Running a sieve twice
// does not change its result, though it is not a supported usage pattern.
//
// # Benchmark Harness
//
// [RunBenchmark] measures how many complete, independent sieves of a given
// size can be finished across a number of worker goroutines within a
// wall-clock budget. Workers are launched in synchronous waves: every worker
// in a wave constructs its own sieve, runs it to completion, and discards it;
// the harness joins the whole wave before checking the budget, so a wave in
// flight is never cancelled. One pass is credited per finished worker.
//
// After the timed loop, one final instrumented sieve produces the
// authoritative prime count, an xxh3 fingerprint of the bit array, and a
// validation verdict against historically known prime counts. Its own
// runtime is excluded from the measured duration.
//
// # Thread Safety
//
// A [Sieve] is NOT safe for concurrent use; each instance has a single
// owner. The harness needs no locks or atomics because workers share
// nothing: every worker owns its sieve exclusively, and the pass counter is
// touched only by the controlling goroutine at wave barriers.
//
// # Validation
//
// [Sieve.Validate] compares the computed count against an immutable table of
// historically known prime counts (10 through ten billion). The verdict is a
// tri-state: limits absent from the table yield [ValidationNoData], distinct
// from both pass and fail. A failed validation is data, not an error.
package primes
