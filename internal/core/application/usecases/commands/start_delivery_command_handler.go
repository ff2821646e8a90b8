package commands

import (
	"context"
	"errors"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
)

// StartDeliveryCommandHandler moves an assigned order into in_progress.
type StartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.SnapshotPublisher
}

// NewStartDeliveryCommandHandler creates a handler to start deliveries.
func NewStartDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.SnapshotPublisher,
) (StartDeliveryCommandHandler, error) {
	if uowFactory == nil || publisher == nil {
		return StartDeliveryCommandHandler{}, errors.New("all StartDeliveryCommandHandler dependencies must not be nil")
	}

	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}, nil
}

// Handle starts the delivery on behalf of the assigned partner.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.Start(cmd.Actor())
	})
}
