package commands

import (
	"context"
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/core/ports"
)

// RefreshEtaCommandHandler recomputes delivery estimates for every active
// order. It is driven by the periodic job rather than by user requests.
// Each order is updated in its own unit of work, so one failing order
// does not abort the sweep; failures are joined and returned at the end.
type RefreshEtaCommandHandler struct {
	uowFactory OrderUoWFactory
	distance   ports.DistanceCalculator
	estimator  services.EtaEstimator
	publisher  ports.SnapshotPublisher
	now        func() time.Time
}

// NewRefreshEtaCommandHandler creates a handler for estimate refreshes.
func NewRefreshEtaCommandHandler(
	uowFactory OrderUoWFactory,
	distance ports.DistanceCalculator,
	publisher ports.SnapshotPublisher,
) RefreshEtaCommandHandler {
	return RefreshEtaCommandHandler{
		uowFactory: uowFactory,
		distance:   distance,
		estimator:  services.NewEtaEstimator(),
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle refreshes the estimate of every assigned or in-progress order.
func (h RefreshEtaCommandHandler) Handle(ctx context.Context, cmd RefreshEtaCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	active, err := uow.OrderRepository().GetAllActive(ctx)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
		err = errors.Join(err, rollbackErr)
	}
	if err != nil {
		return err
	}

	var sweepErr error
	for _, aggregate := range active {
		if refreshErr := h.refreshOne(ctx, aggregate); refreshErr != nil {
			sweepErr = errors.Join(sweepErr, refreshErr)
		}
	}
	return sweepErr
}

func (h RefreshEtaCommandHandler) refreshOne(ctx context.Context, stale *order.Order) error {
	distanceKm, err := h.distance.DistanceKm(ctx, stale.PickupAddress(), stale.DeliveryAddress())
	if err != nil {
		return err
	}

	eta, err := h.estimator.EstimateAt(h.now(), stale.VehicleClass(), distanceKm)
	if err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.publisher, stale.ID(), func(o *order.Order) error {
		return o.SetEta(eta)
	})
}
