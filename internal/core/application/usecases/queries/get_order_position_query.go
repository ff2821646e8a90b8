package queries

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetOrderPositionQueryIsNotConstructed = errors.New(
	"GetOrderPositionQuery must be created via NewGetOrderPositionQuery constructor",
)

// GetOrderPositionQuery fetches the latest tracking state of an order.
// Tracking clients issue it once when they connect, before switching to
// the live snapshot stream.
type GetOrderPositionQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderPositionQuery creates a query for the order's latest position.
func NewGetOrderPositionQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderPositionQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderPositionQuery{}, err
	}

	return GetOrderPositionQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderPositionQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderPositionQueryIsNotConstructed)
}

// OrderID returns the tracked order.
func (q GetOrderPositionQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the caller requesting the position.
func (q GetOrderPositionQuery) Actor() kernel.Actor {
	return q.actor
}

// GetOrderPositionQueryResponse carries the tracking state of one order.
// Location and ObservedAt are nil until the first position report lands.
type GetOrderPositionQueryResponse struct {
	OrderID    kernel.UUID
	Status     order.Status
	Location   *kernel.GeoPoint
	ObservedAt *time.Time
	Eta        *time.Time
}
