package partition

import "errors"

var (
	// ErrFragmentTooShort is returned by Segments when called on a
	// fragment shorter than k+1; callers are expected to check
	// Fragment.Admissible first and silently skip short fragments
	// (spec.md section 4.1 "Failure semantics"), so this is only
	// surfaced to callers that bypass that check.
	ErrFragmentTooShort = errors.New("partition: fragment shorter than k+1")
)
