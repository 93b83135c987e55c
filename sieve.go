package primes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	"github.com/zeebo/xxh3"
)

// ErrInvalidLimit is returned when a sieve is constructed with a limit of zero.
var ErrInvalidLimit = errors.New("primes: sieve limit must be at least 1")

// Sieve is a Sieve of Eratosthenes over the integers below a fixed limit,
// using odd-only bit-packed storage.
//
// One bit is tracked per odd integer: the bit for odd n lives at index n/2
// inside a packed []uint64 array. A set bit means "not yet proven composite".
// Even numbers and the prime 2 never consume storage.
//
// A Sieve is not safe for concurrent use. Each instance has a single owner
// and is intended to be constructed, swept once with [Sieve.Run], queried,
// and discarded.
type Sieve struct {
	words   []uint64 // packed candidate bits, one per odd integer
	numBits uint64   // limit/2: number of odd integers below limit
	limit   uint64   // exclusive upper bound of the sieved range
}

// NewSieve creates a sieve covering the integers in [0, limit), with every
// odd candidate initially marked potentially prime. Returns ErrInvalidLimit
// if limit is zero.
func NewSieve(limit uint64) (*Sieve, error) {
	if limit == 0 {
		return nil, fmt.Errorf("%w: got 0", ErrInvalidLimit)
	}

	numBits := limit / 2
	words := make([]uint64, (numBits+63)/64)
	for i := range words {
		words[i] = ^uint64(0)
	}

	// Mask the tail word down to the exact bit count so popcount-based
	// counting never sees phantom candidates past the limit.
	if tail := numBits % 64; tail != 0 {
		words[len(words)-1] = (uint64(1) << tail) - 1
	}

	return &Sieve{
		words:   words,
		numBits: numBits,
		limit:   limit,
	}, nil
}

// bit reports whether the candidate bit at idx is still set.
func (s *Sieve) bit(idx uint64) bool {
	return s.words[idx>>6]&(1<<(idx&63)) != 0
}

// clearBit marks the candidate at idx composite.
func (s *Sieve) clearBit(idx uint64) {
	s.words[idx>>6] &^= 1 << (idx & 63)
}

// Run performs the elimination sweep, leaving each bit set if and only if
// the odd number it represents is prime.
//
// Every odd factor from 3 up to the exact integer square root of the limit
// is considered; factors whose own bit is already cleared are skipped, which
// guarantees every factor actually used is prime. Clearing starts at
// factor*factor because all smaller multiples carry a smaller prime factor
// and were eliminated on an earlier iteration, and steps by 2*factor to
// touch only odd multiples.
//
// Run is the single transition from the unswept to the swept state. A second
// call changes nothing but is not a supported usage pattern.
func (s *Sieve) Run() {
	// 1 is not prime; it is the one odd non-composite the factor loop
	// can never reach.
	if s.numBits > 0 {
		s.clearBit(0)
	}

	q := isqrt(s.limit)
	for factor := uint64(3); factor <= q; factor += 2 {
		if !s.bit(factor >> 1) {
			continue
		}
		// Index-space walk: odd n maps to n/2, so starting at
		// factor*factor and stepping 2*factor becomes a step of factor.
		for idx := (factor * factor) >> 1; idx < s.numBits; idx += factor {
			s.clearBit(idx)
		}
	}
}

// IsPrime reports whether n is prime. Even values above 2 are rejected
// without consulting the bit array.
//
// n must be below the sieve's limit; the hot path carries no bounds check,
// so larger values panic or return garbage. Callers are responsible for the
// range. Results are only meaningful after [Sieve.Run].
func (s *Sieve) IsPrime(n uint64) bool {
	if n < 3 {
		return n == 2
	}
	if n&1 == 0 {
		return false
	}
	return s.bit(n >> 1)
}

// Count returns the number of primes found: one for the value 2 when the
// limit admits it, plus a popcount sweep over the packed words.
//
// Count is only meaningful after [Sieve.Run]; called earlier it returns a
// too-high candidate count, harmlessly.
func (s *Sieve) Count() uint64 {
	var count uint64
	if s.limit >= 2 {
		count = 1
	}
	for _, w := range s.words {
		count += uint64(bits.OnesCount64(w))
	}
	return count
}

// Primes returns the primes found, in ascending order. Only meaningful
// after [Sieve.Run].
func (s *Sieve) Primes() []uint64 {
	out := make([]uint64, 0, s.Count())
	if s.limit >= 2 {
		out = append(out, 2)
	}
	for n := uint64(3); n < s.limit; n += 2 {
		if s.bit(n >> 1) {
			out = append(out, n)
		}
	}
	return out
}

// Fingerprint returns an xxh3 digest of the packed candidate bits,
// little-endian word order. Two sieves over the same limit produce equal
// fingerprints exactly when their bit arrays agree, which makes runs cheap
// to compare without materializing prime lists.
func (s *Sieve) Fingerprint() uint64 {
	h := xxh3.New()
	var buf [8]byte
	for _, w := range s.words {
		binary.LittleEndian.PutUint64(buf[:], w)
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Validate compares Count against the historically known prime count for
// this sieve's exact limit. Limits absent from the reference table yield
// ValidationNoData rather than a verdict.
func (s *Sieve) Validate() Validation {
	want, ok := KnownPrimeCount(s.limit)
	if !ok {
		return ValidationNoData
	}
	if s.Count() == want {
		return ValidationPass
	}
	return ValidationFail
}

// Limit returns the exclusive upper bound of the sieved range.
func (s *Sieve) Limit() uint64 {
	return s.limit
}

// isqrt returns the exact floor of the square root of n. Newton's method on
// integers, so the factor bound never under-shoots the way a narrowing
// float conversion can for very large limits.
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	// Starting guess is the smallest power of two >= sqrt(n); from above,
	// the iteration decreases monotonically to the floor and x+n/x cannot
	// overflow.
	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}
