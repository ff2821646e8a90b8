package queries

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists the orders visible to an actor. The visible set
// depends on the actor's role: customers get their own bookings, partners
// their assigned deliveries, administrators the full order book.
type GetOrdersQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders for the actor.
func NewGetOrdersQuery(actor kernel.Actor) (GetOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the caller listing orders.
func (q GetOrdersQuery) Actor() kernel.Actor {
	return q.actor
}
