package commands

import (
	"context"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
)

// applyOrderTransition runs a single order mutation inside a unit of work:
// load, apply the domain operation, persist, commit. The snapshot is
// published only after the commit succeeds, so subscribers never see
// uncommitted state. A version conflict surfaces as errs.ErrConflict from
// the repository and is returned to the caller for retry.
func applyOrderTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	publisher ports.SnapshotPublisher,
	orderID kernel.UUID,
	apply func(*order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = apply(aggregate); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publisher.Publish(aggregate.Snapshot())
	return nil
}
