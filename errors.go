package espgo

import "errors"

// Error kinds per the core's error-handling design: bounds violations, type
// mismatches, and uncreated-source copies are programmer errors and abort
// (the caller is expected to panic with these wrapped in a diagnostic);
// task and dump I/O failures are recoverable and merely returned.
var (
	// ErrBoundsViolation is returned (and, at invariant-checking call
	// sites, panicked with) when a neuron or network index is out of range.
	ErrBoundsViolation = errors.New("espgo: bounds violation")

	// ErrTypeMismatch is returned when a network assignment or dump load
	// targets an incompatible variant type.
	ErrTypeMismatch = errors.New("espgo: network variant type mismatch")

	// ErrUncreatedSource is returned when copying from a network whose
	// neurons were never initialized via Create.
	ErrUncreatedSource = errors.New("espgo: source network not created")

	// ErrTaskFailure marks a task evaluation that failed; the evaluator
	// substitutes a sentinel fitness of zero and returns this, wrapped, for
	// the caller to log.
	ErrTaskFailure = errors.New("espgo: task evaluation failed")
)
