package primes

// Validation is the tri-state outcome of checking a sieve's prime count
// against the historical reference table. A failed validation is a normal
// result surfaced as data, never an error.
type Validation int

const (
	// ValidationNoData means the sieve's limit has no reference entry,
	// so no claim is made either way.
	ValidationNoData Validation = iota
	// ValidationPass means the computed count matches the reference exactly.
	ValidationPass
	// ValidationFail means the computed count differs from the reference.
	ValidationFail
)

// String returns the printer-facing name of the verdict.
func (v Validation) String() string {
	switch v {
	case ValidationPass:
		return "pass"
	case ValidationFail:
		return "fail"
	default:
		return "no reference data"
	}
}

// knownPrimeCounts maps an upper limit to the historically established
// number of primes below it. The table is read-only reference data used to
// sanity-check sieve results; no part of the sieve computation depends on it.
var knownPrimeCounts = map[uint64]uint64{
	10:             4,
	100:            25,
	1_000:          168,
	10_000:         1_229,
	100_000:        9_592,
	1_000_000:      78_498,
	10_000_000:     664_579,
	100_000_000:    5_761_455,
	1_000_000_000:  50_847_534,
	10_000_000_000: 455_052_511,
}

// KnownPrimeCount returns the historically known prime count below limit,
// and whether the table carries an entry for that exact limit.
func KnownPrimeCount(limit uint64) (uint64, bool) {
	count, ok := knownPrimeCounts[limit]
	return count, ok
}
