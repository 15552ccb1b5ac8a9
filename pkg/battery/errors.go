package battery

import "errors"

// Sentinel errors for the taxonomy the battery surfaces. Every error
// returned by the orchestrator wraps one of these via fmt.Errorf's %w so
// callers can branch with errors.Is.
var (
	// ErrInputMalformed indicates unparseable ASCII or a truncated binary
	// sample stream.
	ErrInputMalformed = errors.New("battery: malformed input")

	// ErrOutOfMemory indicates an allocation failed; any partial results
	// must be discarded by the caller.
	ErrOutOfMemory = errors.New("battery: allocation failed")

	// ErrNumericOverflow indicates a hot numeric path (e.g. the
	// incomplete-beta continued fraction) failed to converge or
	// overflowed.
	ErrNumericOverflow = errors.New("battery: numeric overflow or non-convergence")

	// ErrUnsupported indicates a configuration combination that cannot
	// yield a statistically meaningful result, e.g. parameter-level
	// bootstrap requested with fewer than 200 blocks.
	ErrUnsupported = errors.New("battery: unsupported configuration")
)
