package commands

import (
	"context"
	"errors"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
)

// CompleteDeliveryCommandHandler settles an in-progress order as delivered.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.SnapshotPublisher
}

// NewCompleteDeliveryCommandHandler creates a handler to complete deliveries.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.SnapshotPublisher,
) (CompleteDeliveryCommandHandler, error) {
	if uowFactory == nil || publisher == nil {
		return CompleteDeliveryCommandHandler{}, errors.New("all CompleteDeliveryCommandHandler dependencies must not be nil")
	}

	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}, nil
}

// Handle completes the delivery on behalf of the assigned partner.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.Complete(cmd.Actor())
	})
}
