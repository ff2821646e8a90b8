package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand represents the assigned partner picking up the
// package and beginning the delivery.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to start delivering the order.
func NewStartDeliveryCommand(orderID kernel.UUID, actor kernel.Actor) (StartDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return StartDeliveryCommand{}, err
	}

	return StartDeliveryCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being started.
func (c StartDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the caller starting the delivery.
func (c StartDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}
