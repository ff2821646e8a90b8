// Package ports defines the interfaces between the domain layer and
// infrastructure: persistence, change notification and the external
// distance provider. These contracts enable dependency inversion and
// testability.
package ports

import (
	"context"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update must be implemented with optimistic concurrency control keyed on
// the aggregate's version: when two concurrent updates target the same
// order, exactly one commits and the other fails with errs.ErrConflict.
// A conflicting caller re-fetches current state and retries or surfaces
// the conflict; it is never silently dropped.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with errs.ErrObjectNotFound when the order does not exist and
	// with errs.ErrConflict when the stored version no longer matches the
	// aggregate's version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCustomer retrieves all orders owned by a customer,
	// newest first.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetByPartner retrieves all orders assigned to a partner,
	// newest first.
	GetByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)

	// GetAll retrieves every order, newest first. Admin listings only.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllActive retrieves orders whose status is assigned or
	// in_progress. Used by the ETA refresh job.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
