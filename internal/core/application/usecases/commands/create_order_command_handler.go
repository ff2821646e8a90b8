package commands

import (
	"context"
	"time"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// It resolves the route distance through the external distance provider,
// computes the authoritative price and the initial delivery estimate, and
// persists a new order in pending status.
//
// Order creation is refused when the distance cannot be resolved
// (ports.ErrDistanceUnavailable); the price is never computed from an
// untrusted or guessed distance.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	distance   ports.DistanceCalculator
	pricing    services.Pricing
	estimator  services.EtaEstimator
	publisher  ports.SnapshotPublisher
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	distance ports.DistanceCalculator,
	publisher ports.SnapshotPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		distance:   distance,
		pricing:    services.NewPricing(),
		estimator:  services.NewEtaEstimator(),
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle processes the order creation command.
// The amount is set exactly once here; it is never recomputed later in
// the order's life. The created snapshot is published only after the
// transaction has committed.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	distanceKm, err := h.distance.DistanceKm(ctx, cmd.PickupAddress(), cmd.DeliveryAddress())
	if err != nil {
		return err
	}

	amount, err := h.pricing.Price(cmd.VehicleClass(), distanceKm)
	if err != nil {
		return err
	}

	createdAt := h.now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID(),
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		cmd.VehicleClass(),
		amount,
		cmd.SpecialInstructions(),
		createdAt,
	)
	if err != nil {
		return err
	}

	eta, err := h.estimator.EstimateAt(createdAt, cmd.VehicleClass(), distanceKm)
	if err != nil {
		return err
	}
	if err = newOrder.SetEta(eta); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(newOrder.Snapshot())
	return nil
}
