package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order row from the database.
// Reading a foreign order fails with order.ErrUnauthorized rather than
// not-found, mirroring how the write side reports authorization failures.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and enforces read authorization.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM orders WHERE id = ?`, orderColumns),
		query.OrderID().Bytes(),
	).Row()

	resp, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	if !canSeeOrder(query.Actor(), resp) {
		return OrderResponse{}, fmt.Errorf(
			"%w: %s cannot read order %s", order.ErrUnauthorized, query.Actor(), query.OrderID())
	}

	return resp, nil
}
