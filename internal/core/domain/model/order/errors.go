package order

import "errors"

// Typed lifecycle failures. Callers classify them with errors.Is and map
// them to precise user-facing messaging; none of them are retryable.
var (
	// ErrUnauthorized is returned when the caller's role or identity does
	// not permit the attempted operation. It is reported before any state
	// check so unauthorized callers cannot probe the state machine.
	ErrUnauthorized = errors.New("caller is not authorized for this operation")

	// ErrInvalidTransition is returned when the requested transition has no
	// edge from the order's current status.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrTerminalStateViolation is returned for any transition attempted
	// from Delivered or Cancelled.
	ErrTerminalStateViolation = errors.New("order is in a terminal state")

	// ErrAlreadyAssigned is returned when assigning an order that already
	// has a partner.
	ErrAlreadyAssigned = errors.New("order already has an assigned partner")

	// ErrNotAssignedPartner is returned when a partner other than the
	// assigned one attempts a partner-only operation.
	ErrNotAssignedPartner = errors.New("caller is not the assigned partner")

	// ErrTrackingInactive is returned for position reports while the order
	// is not being actively delivered.
	ErrTrackingInactive = errors.New("position tracking is not active for this order")

	// ErrStalePosition is returned for position reports observed earlier
	// than the currently stored position.
	ErrStalePosition = errors.New("position report is older than the stored position")
)
