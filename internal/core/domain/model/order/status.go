package order

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> InProgress ──> Delivered
//	   │            │
//	   └────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal states with no outgoing edges.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	// Orders in this status are waiting to be assigned to a partner.
	StatusPending

	// StatusAssigned indicates the order has been accepted by a partner
	// who has not yet picked up the package.
	StatusAssigned

	// StatusInProgress indicates the package is on its way to the
	// delivery address. Cancellation is no longer possible.
	StatusInProgress

	// StatusDelivered indicates the package reached the customer.
	// Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was withdrawn before pickup.
	// Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusAssigned:   "assigned",
		StatusInProgress: "in_progress",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "pending",
		StatusAssigned:   "assigned",
		StatusInProgress: "in_progress",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a member of the state machine.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// It implements the fmt.Stringer interface and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsTrackable reports whether partner position reports are accepted
// while the order is in this status.
func (s Status) IsTrackable() bool {
	return s == StatusAssigned || s == StatusInProgress
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned
//
// Returns ErrTerminalStateViolation from Delivered or Cancelled and
// ErrInvalidTransition from any other status.
func (s Status) Assign() (Status, error) {
	if err := s.checkNotTerminal("assign"); err != nil {
		return StatusUnknown, err
	}
	if s != StatusPending {
		return StatusUnknown, fmt.Errorf("%w: cannot assign from %s", ErrInvalidTransition, s)
	}

	return StatusAssigned, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Assigned -> InProgress
//
// Returns ErrTerminalStateViolation from Delivered or Cancelled and
// ErrInvalidTransition from any other status.
func (s Status) Start() (Status, error) {
	if err := s.checkNotTerminal("start"); err != nil {
		return StatusUnknown, err
	}
	if s != StatusAssigned {
		return StatusUnknown, fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, s)
	}

	return StatusInProgress, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - InProgress -> Delivered
//
// Returns ErrTerminalStateViolation from Delivered or Cancelled and
// ErrInvalidTransition from any other status.
func (s Status) Complete() (Status, error) {
	if err := s.checkNotTerminal("complete"); err != nil {
		return StatusUnknown, err
	}
	if s != StatusInProgress {
		return StatusUnknown, fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, s)
	}

	return StatusDelivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending  -> Cancelled
//   - Assigned -> Cancelled
//
// Cancellation is refused with ErrInvalidTransition once delivery is
// underway (InProgress), and with ErrTerminalStateViolation from a
// terminal state.
func (s Status) Cancel() (Status, error) {
	if err := s.checkNotTerminal("cancel"); err != nil {
		return StatusUnknown, err
	}
	if s != StatusPending && s != StatusAssigned {
		return StatusUnknown, fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, s)
	}

	return StatusCancelled, nil
}

func (s Status) checkNotTerminal(operation string) error {
	if s.IsTerminal() {
		return fmt.Errorf("%w: cannot %s a %s order", ErrTerminalStateViolation, operation, s)
	}
	return nil
}
