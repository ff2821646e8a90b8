package commands

import (
	"context"
	"errors"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
)

// ReportPositionCommandHandler applies a position report to the tracked order.
type ReportPositionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.SnapshotPublisher
}

// NewReportPositionCommandHandler creates a handler to process position reports.
func NewReportPositionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.SnapshotPublisher,
) (ReportPositionCommandHandler, error) {
	if uowFactory == nil || publisher == nil {
		return ReportPositionCommandHandler{}, errors.New("all ReportPositionCommandHandler dependencies must not be nil")
	}

	return ReportPositionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}, nil
}

// Handle stores the reported position when it is fresher than the last one.
func (h ReportPositionCommandHandler) Handle(ctx context.Context, cmd ReportPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.ReportPosition(cmd.Actor(), cmd.Position(), cmd.ObservedAt())
	})
}
