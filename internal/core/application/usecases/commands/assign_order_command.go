package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to assign a pending order to a
// delivery partner. Partners assign orders to themselves; admins may
// assign any partner.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     kernel.Actor
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign partnerID to the order.
func NewAssignOrderCommand(orderID kernel.UUID, actor kernel.Actor, partnerID kernel.UUID) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		partnerID.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.partnerID = partnerID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the caller requesting the assignment.
func (c AssignOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// PartnerID returns the partner to be assigned.
func (c AssignOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
