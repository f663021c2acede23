package lifecycle

import "errors"

// Domain validation errors reported to the operator. Each failed
// registration leaves the snapshot untouched.
var (
	// ErrDuplicateTransition means the order is already past the attempted
	// stage.
	ErrDuplicateTransition = errors.New("order already completed")

	// ErrNotArrived means service registration was attempted with no
	// arrival on record.
	ErrNotArrived = errors.New("no arrival registered for order")

	// ErrInvalidOrder means the service end is not after the service start.
	ErrInvalidOrder = errors.New("service end must be after service start")

	// ErrServiceBeforeArrival means the service start precedes the
	// registered arrival time.
	ErrServiceBeforeArrival = errors.New("service start is before arrival time")
)
