package commands

import (
	"context"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
)

// AssignOrderCommandHandler moves a pending order to assigned status and
// records the partner. The transition and the partner field update commit
// atomically; under concurrent assignment attempts on the same order the
// repository's optimistic versioning guarantees exactly one succeeds and
// the other receives errs.ErrConflict.
type AssignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.SnapshotPublisher
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
func NewAssignOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.SnapshotPublisher) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.Assign(cmd.Actor(), cmd.PartnerID())
	})
}
