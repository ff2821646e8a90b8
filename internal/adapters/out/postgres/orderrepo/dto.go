// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and vehicle class are stored as their wire strings so the rows stay
// readable in ad-hoc queries. The version column drives optimistic locking.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID  `gorm:"type:uuid;index"`
	PartnerID           *uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress       string
	DeliveryAddress     string
	VehicleClass        string
	Amount              int
	SpecialInstructions string
	Status              string `gorm:"index"`
	LocationLat         *float64
	LocationLng         *float64
	PositionObservedAt  *time.Time
	CreatedAt           time.Time
	Eta                 *time.Time
	Version             int64
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.Partner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	var lat, lng *float64
	if loc := aggregate.CurrentLocation(); loc != nil {
		latVal, lngVal := loc.Lat(), loc.Lng()
		lat, lng = &latVal, &lngVal
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		CustomerID:          aggregate.CustomerID().Bytes(),
		PartnerID:           partnerID,
		PickupAddress:       aggregate.PickupAddress(),
		DeliveryAddress:     aggregate.DeliveryAddress(),
		VehicleClass:        aggregate.VehicleClass().String(),
		Amount:              aggregate.Amount(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		Status:              aggregate.Status().String(),
		LocationLat:         lat,
		LocationLng:         lng,
		PositionObservedAt:  aggregate.PositionObservedAt(),
		CreatedAt:           aggregate.CreatedAt(),
		Eta:                 aggregate.Eta(),
		Version:             aggregate.Version(),
	}
}

// toDomain converts a database row back to an order aggregate using
// RestoreOrder, which re-checks structural consistency of the stored state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	vehicleClass, err := order.VehicleClassFromString(dto.VehicleClass)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLng)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	return order.RestoreOrder(
		id,
		customerID,
		partnerID,
		dto.PickupAddress,
		dto.DeliveryAddress,
		vehicleClass,
		dto.Amount,
		dto.SpecialInstructions,
		status,
		location,
		dto.PositionObservedAt,
		dto.CreatedAt,
		dto.Eta,
		dto.Version,
	)
}
