package primes

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Defaults applied by RunBenchmark when the corresponding Options field is
// left at its zero value.
const (
	// DefaultLimit is the sieve size used when Options.Limit is zero.
	DefaultLimit uint64 = 10_000_000
	// DefaultDuration is the time budget used when Options.Duration is zero.
	DefaultDuration = 5 * time.Second
)

var (
	// ErrOneShotConflict is returned when one-shot mode is combined with an
	// explicit thread count above one or an explicit time budget.
	ErrOneShotConflict = errors.New("primes: one-shot mode conflicts with explicit thread count or time budget")

	// ErrInvalidOption is returned for option values outside their valid range.
	ErrInvalidOption = errors.New("primes: invalid benchmark option")
)

// Options configures a benchmark run. The zero value of each field means
// "unspecified" and is resolved to a default: Limit to DefaultLimit, Threads
// to the available hardware parallelism, Duration to DefaultDuration.
type Options struct {
	// Limit is the exclusive upper bound of each sieve.
	Limit uint64

	// Threads is the number of concurrent workers per wave.
	Threads int

	// Duration is the wall-clock budget for launching new waves. A wave in
	// flight when the budget expires always runs to completion.
	Duration time.Duration

	// OneShot skips the timed loop and performs exactly one sieve run,
	// crediting exactly one pass. It cannot be combined with an explicit
	// Threads above one or an explicit Duration.
	OneShot bool
}

// Result is the record a benchmark run hands to its caller. Rendering it is
// the caller's concern; the harness only guarantees the fields are correct.
type Result struct {
	// Limit is the sieve size that was benchmarked.
	Limit uint64
	// Threads is the worker count actually used.
	Threads int
	// Passes is the number of completed independent sieve runs credited.
	Passes uint64
	// Elapsed is the measured wall-clock duration of the timed loop. The
	// final check sieve runs outside it, so in one-shot mode Elapsed is
	// near zero.
	Elapsed time.Duration
	// Count is the prime count from the final check sieve.
	Count uint64
	// Fingerprint is the xxh3 digest of the check sieve's bit array.
	Fingerprint uint64
	// Validation is the verdict against the known-answer table.
	Validation Validation
	// Sieve is the swept check sieve, kept so callers can enumerate the
	// primes themselves.
	Sieve *Sieve
}

// RunBenchmark measures sieve throughput per the given options and returns
// the result record from one final authoritative run.
//
// Workers are launched in synchronous waves of Threads goroutines. Each
// worker constructs its own sieve, runs it to completion, and discards it;
// nothing is shared across workers, so the computation needs no locks or
// atomics. The harness joins the entire wave, credits Threads passes, and
// only then re-checks the time budget, so at least one full wave always
// completes and no worker is ever cancelled mid-run.
func RunBenchmark(opts Options) (*Result, error) {
	// Conflicts are judged on the explicit values, before defaulting,
	// so an unspecified thread count never masks a misconfiguration.
	if opts.OneShot && (opts.Threads > 1 || opts.Duration != 0) {
		return nil, fmt.Errorf("%w: threads=%d duration=%v", ErrOneShotConflict, opts.Threads, opts.Duration)
	}
	if opts.Threads < 0 {
		return nil, fmt.Errorf("%w: threads=%d", ErrInvalidOption, opts.Threads)
	}
	if opts.Duration < 0 {
		return nil, fmt.Errorf("%w: duration=%v", ErrInvalidOption, opts.Duration)
	}

	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	threads := opts.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	budget := opts.Duration
	if budget == 0 {
		budget = DefaultDuration
	}
	if opts.OneShot {
		threads = 1
	}

	start := time.Now()
	var passes uint64

	if opts.OneShot {
		// The single credited pass is the check sieve below.
		passes = 1
	} else {
		for {
			g := new(errgroup.Group)
			for i := 0; i < threads; i++ {
				g.Go(func() error {
					s, err := NewSieve(limit)
					if err != nil {
						return err
					}
					s.Run()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
			passes += uint64(threads)
			if time.Since(start) >= budget {
				break
			}
		}
	}

	elapsed := time.Since(start)

	// One more instrumented run outside the timed loop for the
	// authoritative counts; its own time stays out of the denominator.
	check, err := NewSieve(limit)
	if err != nil {
		return nil, err
	}
	check.Run()

	return &Result{
		Limit:       limit,
		Threads:     threads,
		Passes:      passes,
		Elapsed:     elapsed,
		Count:       check.Count(),
		Fingerprint: check.Fingerprint(),
		Validation:  check.Validate(),
		Sieve:       check,
	}, nil
}
