package booking

import "errors"

// Engine outcomes callers are expected to branch on with errors.Is. Handlers
// translate them into HTTP statuses; none of them are fatal process errors.
var (
	// ErrNotFound covers unknown business, staff, service or appointment IDs.
	ErrNotFound = errors.New("not found")

	// ErrOutsideAvailability rejects a start time not contained in any open
	// availability window for that staff member on that weekday.
	ErrOutsideAvailability = errors.New("outside availability")

	// ErrSlotConflict rejects an individual booking that would overlap an
	// existing appointment within the buffer, or hit the store backstop.
	ErrSlotConflict = errors.New("slot conflict")

	// ErrCapacityExceeded rejects joining a class slot that is already full.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidTransition rejects a lifecycle change the state machine does
	// not permit, e.g. cancelling a completed appointment.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrPolicyViolation rejects a customer cancellation inside the
	// business's cancellation window.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrRetryable surfaces after a store transaction failed twice on
	// serialization conflicts. The request may succeed if repeated.
	ErrRetryable = errors.New("temporary conflict, please retry")
)
