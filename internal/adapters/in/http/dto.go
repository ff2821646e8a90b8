package http

import (
	"time"

	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/order"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	PickupAddress       string `json:"pickup_address"`
	DeliveryAddress     string `json:"delivery_address"`
	VehicleClass        string `json:"vehicle_class"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// AssignOrderRequest is the body of POST /api/v1/orders/:id/assign.
type AssignOrderRequest struct {
	PartnerID string `json:"partner_id"`
}

// ReportPositionRequest is the body of POST /api/v1/orders/:id/position.
type ReportPositionRequest struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	ObservedAt time.Time `json:"observed_at"`
}

// PositionResponse is the JSON shape of a partner position.
type PositionResponse struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	ObservedAt time.Time `json:"observed_at"`
}

// OrderResponse is the JSON shape of one order.
type OrderResponse struct {
	ID                  string            `json:"id"`
	CustomerID          string            `json:"customer_id"`
	PartnerID           *string           `json:"partner_id,omitempty"`
	PickupAddress       string            `json:"pickup_address"`
	DeliveryAddress     string            `json:"delivery_address"`
	VehicleClass        string            `json:"vehicle_class"`
	Amount              int               `json:"amount"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`
	Status              string            `json:"status"`
	Position            *PositionResponse `json:"position,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	Eta                 *time.Time        `json:"eta,omitempty"`
}

// TrackEvent is one message on the GET /api/v1/orders/:id/track stream.
type TrackEvent struct {
	OrderID    string            `json:"order_id"`
	Status     string            `json:"status"`
	Position   *PositionResponse `json:"position,omitempty"`
	Eta        *time.Time        `json:"eta,omitempty"`
	ObservedAt *time.Time        `json:"observed_at,omitempty"`
}

func toOrderResponse(resp queries.OrderResponse) OrderResponse {
	out := OrderResponse{
		ID:                  resp.ID.String(),
		CustomerID:          resp.CustomerID.String(),
		PickupAddress:       resp.PickupAddress,
		DeliveryAddress:     resp.DeliveryAddress,
		VehicleClass:        resp.VehicleClass.String(),
		Amount:              resp.Amount,
		SpecialInstructions: resp.SpecialInstructions,
		Status:              resp.Status.String(),
		CreatedAt:           resp.CreatedAt,
		Eta:                 resp.Eta,
	}

	if resp.PartnerID != nil {
		id := resp.PartnerID.String()
		out.PartnerID = &id
	}
	if resp.Location != nil && resp.PositionObservedAt != nil {
		out.Position = &PositionResponse{
			Lat:        resp.Location.Lat(),
			Lng:        resp.Location.Lng(),
			ObservedAt: *resp.PositionObservedAt,
		}
	}

	return out
}

func toTrackEvent(snapshot order.Snapshot) TrackEvent {
	event := TrackEvent{
		OrderID:    snapshot.OrderID.String(),
		Status:     snapshot.Status.String(),
		Eta:        snapshot.Eta,
		ObservedAt: snapshot.ObservedAt,
	}

	if snapshot.Location != nil && snapshot.ObservedAt != nil {
		event.Position = &PositionResponse{
			Lat:        snapshot.Location.Lat(),
			Lng:        snapshot.Location.Lng(),
			ObservedAt: *snapshot.ObservedAt,
		}
	}

	return event
}
