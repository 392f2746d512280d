package sim

import "errors"

// Errors reported by the scheduling core. All of them are precondition or
// consistency failures; none are transient, so callers should not retry.
var (
	// ErrEmptyWorkload is returned when there are no processes to schedule or measure.
	ErrEmptyWorkload = errors.New("empty workload")
	// ErrIncompletePass is returned when metrics are requested before every process finished.
	ErrIncompletePass = errors.New("incomplete pass")
	// ErrInvalidQuantum is returned for a round-robin time quantum <= 0.
	ErrInvalidQuantum = errors.New("invalid time quantum")
	// ErrMalformedWorkload is returned when process descriptors are inconsistent.
	ErrMalformedWorkload = errors.New("malformed workload")
	// ErrInvariantViolation is returned when a finished process carries inconsistent times,
	// e.g. a negative waiting time.
	ErrInvariantViolation = errors.New("invariant violation")
)
