package config

import "errors"

// Sentinel errors returned by Validate.
var (
	// ErrEvenK indicates k is even; k-mers must have an odd length so that
	// no k-mer is its own reverse complement at the midpoint ambiguity.
	ErrEvenK = errors.New("config: k must be odd")

	// ErrKRange indicates k fell outside the supported [3, 63] range.
	ErrKRange = errors.New("config: k must be in [3, 63]")

	// ErrMinimizerTooLong indicates l exceeds k, or l exceeds the 32-base
	// limit that still fits a single 64-bit word.
	ErrMinimizerTooLong = errors.New("config: l must satisfy 1 <= l <= min(k, 32)")

	// ErrGraphsNotPowerOfTwo indicates G is not a power of two.
	ErrGraphsNotPowerOfTwo = errors.New("config: graph count must be a power of two")

	// ErrThreadRange indicates the requested thread count is unsupported.
	ErrThreadRange = errors.New("config: thread count must be >= 1")

	// ErrReaderRange indicates the requested reader-thread count is unsupported.
	ErrReaderRange = errors.New("config: reader thread count must be in [2, 4]")

	// ErrMemoryBudget indicates a strict memory budget of zero was requested,
	// which is never satisfiable.
	ErrMemoryBudget = errors.New("config: strict memory budget must be > 0 GiB")

	// ErrNoWorkDir indicates the working directory was left empty.
	ErrNoWorkDir = errors.New("config: working directory must be set")
)
