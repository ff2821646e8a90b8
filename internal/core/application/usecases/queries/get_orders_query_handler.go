package queries

import (
	"context"
	"fmt"

	"swiftdrop/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders from the database, filtered by the
// actor's role. Results are sorted newest first, matching how the booking
// history is rendered.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the role-scoped listing.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	baseQuery := fmt.Sprintf(`SELECT %s FROM orders`, orderColumns)

	var tx *gorm.DB
	switch {
	case actor.IsAdmin():
		tx = h.db.WithContext(ctx).Raw(baseQuery + ` ORDER BY created_at DESC`)
	case actor.IsCustomer():
		tx = h.db.WithContext(ctx).Raw(
			baseQuery+` WHERE customer_id = ? ORDER BY created_at DESC`, actor.ID().Bytes())
	case actor.IsPartner():
		tx = h.db.WithContext(ctx).Raw(
			baseQuery+` WHERE partner_id = ? ORDER BY created_at DESC`, actor.ID().Bytes())
	default:
		return nil, fmt.Errorf("%w: %s cannot list orders", order.ErrUnauthorized, actor)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
