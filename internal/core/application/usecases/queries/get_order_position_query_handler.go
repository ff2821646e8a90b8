package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderPositionQueryHandler reads the tracking subset of an order row.
// It reuses the full-row read and projects it down, keeping authorization
// in one place.
type GetOrderPositionQueryHandler struct {
	orders GetOrderQueryHandler
}

// NewGetOrderPositionQueryHandler creates a handler for tracking reads.
func NewGetOrderPositionQueryHandler(db *gorm.DB) GetOrderPositionQueryHandler {
	return GetOrderPositionQueryHandler{orders: NewGetOrderQueryHandler(db)}
}

// Handle returns the latest known tracking state of the order.
func (h GetOrderPositionQueryHandler) Handle(
	ctx context.Context,
	query GetOrderPositionQuery,
) (GetOrderPositionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderPositionQueryResponse{}, err
	}

	orderQuery, err := NewGetOrderQuery(query.OrderID(), query.Actor())
	if err != nil {
		return GetOrderPositionQueryResponse{}, err
	}

	resp, err := h.orders.Handle(ctx, orderQuery)
	if err != nil {
		return GetOrderPositionQueryResponse{}, err
	}

	return GetOrderPositionQueryResponse{
		OrderID:    resp.ID,
		Status:     resp.Status,
		Location:   resp.Location,
		ObservedAt: resp.PositionObservedAt,
		Eta:        resp.Eta,
	}, nil
}
