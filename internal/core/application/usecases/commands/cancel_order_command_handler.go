package commands

import (
	"context"
	"errors"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders that are still pending or assigned.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.SnapshotPublisher
}

// NewCancelOrderCommandHandler creates a handler to cancel orders.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.SnapshotPublisher,
) (CancelOrderCommandHandler, error) {
	if uowFactory == nil || publisher == nil {
		return CancelOrderCommandHandler{}, errors.New("all CancelOrderCommandHandler dependencies must not be nil")
	}

	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}, nil
}

// Handle cancels the order on behalf of its customer or an administrator.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.Cancel(cmd.Actor())
	})
}
