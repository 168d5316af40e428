package flow

import "errors"

var (
	// ErrInvalidTransition means an operation was attempted from a state
	// whose transition table does not allow it.
	ErrInvalidTransition = errors.New("invalid flow transition")

	// ErrVerificationFailed means the payment verify response did not carry
	// the exact success message. No booking is created.
	ErrVerificationFailed = errors.New("Payment verification failed!")

	// ErrContactSupport is the acknowledged inconsistency window: payment
	// captured, booking absent. Reconciliation belongs to the backend.
	ErrContactSupport = errors.New("Payment successful but booking creation failed. Please contact support.")
)
