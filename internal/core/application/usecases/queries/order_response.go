package queries

import (
	"database/sql"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderResponse is the read model for a single order. It mirrors the
// persisted row rather than the aggregate so handlers never need to
// rebuild domain objects just to render them.
type OrderResponse struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	PartnerID           *kernel.UUID
	PickupAddress       string
	DeliveryAddress     string
	VehicleClass        order.VehicleClass
	Amount              int
	SpecialInstructions string
	Status              order.Status
	Location            *kernel.GeoPoint
	PositionObservedAt  *time.Time
	CreatedAt           time.Time
	Eta                 *time.Time
}

// orderColumns is the select list every order query shares. The scan
// order in scanOrderRow must match it.
const orderColumns = `
	id,
	customer_id,
	partner_id,
	pickup_address,
	delivery_address,
	vehicle_class,
	amount,
	special_instructions,
	status,
	location_lat,
	location_lng,
	position_observed_at,
	created_at,
	eta
`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(scanner rowScanner) (OrderResponse, error) {
	var (
		id, customerID uuid.UUID
		partnerID      *uuid.UUID
		lat, lng       *float64
		observedAt     sql.NullTime
		eta            sql.NullTime
		resp           OrderResponse
		vehicleClass   string
		status         string
	)

	err := scanner.Scan(
		&id,
		&customerID,
		&partnerID,
		&resp.PickupAddress,
		&resp.DeliveryAddress,
		&vehicleClass,
		&resp.Amount,
		&resp.SpecialInstructions,
		&status,
		&lat,
		&lng,
		&observedAt,
		&resp.CreatedAt,
		&eta,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if partnerID != nil {
		pID, pErr := kernel.UUIDFromBytes((*partnerID)[:])
		if pErr != nil {
			return OrderResponse{}, pErr
		}
		resp.PartnerID = &pID
	}

	if resp.VehicleClass, err = order.VehicleClassFromString(vehicleClass); err != nil {
		return OrderResponse{}, err
	}
	if resp.Status, err = order.StatusFromString(status); err != nil {
		return OrderResponse{}, err
	}

	if lat != nil && lng != nil {
		point, locErr := kernel.NewGeoPoint(*lat, *lng)
		if locErr != nil {
			return OrderResponse{}, locErr
		}
		resp.Location = &point
	}
	if observedAt.Valid {
		t := observedAt.Time
		resp.PositionObservedAt = &t
	}
	if eta.Valid {
		t := eta.Time
		resp.Eta = &t
	}

	return resp, nil
}

// canSeeOrder reports whether the actor is allowed to read the order row.
func canSeeOrder(actor kernel.Actor, resp OrderResponse) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.IsCustomer():
		return resp.CustomerID.IsEqual(actor.ID())
	case actor.IsPartner():
		return resp.PartnerID != nil && resp.PartnerID.IsEqual(actor.ID())
	default:
		return false
	}
}
