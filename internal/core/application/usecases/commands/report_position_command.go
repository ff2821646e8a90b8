package commands

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrReportPositionCommandIsNotConstructed = errors.New(
	"ReportPositionCommand must be created via NewReportPositionCommand constructor",
)

// ReportPositionCommand records a partner position observation for an order.
type ReportPositionCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      kernel.Actor
	position   kernel.GeoPoint
	observedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportPositionCommand creates a command to report a partner position.
// observedAt carries the moment the position was captured on the device,
// not the moment the report reached the server.
func NewReportPositionCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	position kernel.GeoPoint,
	observedAt time.Time,
) (ReportPositionCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate(), position.Validate()); err != nil {
		return ReportPositionCommand{}, err
	}

	if observedAt.IsZero() {
		return ReportPositionCommand{}, errs.NewValueIsRequiredError("observedAt")
	}

	return ReportPositionCommand{
		orderID:    orderID,
		actor:      actor,
		position:   position,
		observedAt: observedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportPositionCommandIsNotConstructed)
}

// OrderID returns the order being tracked.
func (c ReportPositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the caller reporting the position.
func (c ReportPositionCommand) Actor() kernel.Actor {
	return c.actor
}

// Position returns the reported coordinates.
func (c ReportPositionCommand) Position() kernel.GeoPoint {
	return c.position
}

// ObservedAt returns when the position was captured.
func (c ReportPositionCommand) ObservedAt() time.Time {
	return c.observedAt
}
