package genome

import "errors"

// Sentinel error kinds surfaced by the genome package. Bounds and invariant
// violations are programmer bugs, not expected control flow; callers use
// errors.Is against these to classify them rather than matching strings.
var (
	// ErrInvalidArgument marks a constructor argument that can never be
	// made to work (non-positive length, a base outside the chromosome).
	ErrInvalidArgument = errors.New("genome: invalid argument")

	// ErrOutOfRange marks a base index outside [0, length) on an access
	// that should have been bounds-checked by the caller already.
	ErrOutOfRange = errors.New("genome: base out of range")

	// ErrAlreadyAttached marks an attach attempt on a fork that is either
	// already attached, or was just detached during an advance and has not
	// been reset by an explicit Detach yet.
	ErrAlreadyAttached = errors.New("genome: fork already attached")

	// ErrExhaustedPool marks an attach attempt against a ForkManager with
	// no free fork. The engine recovers from this locally: the origin
	// still fires, it just fails to claim a fork.
	ErrExhaustedPool = errors.New("genome: fork pool exhausted")
)
