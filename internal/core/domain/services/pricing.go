package services

import (
	"fmt"
	"math"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"
)

// Tariff holds the pricing parameters of a single vehicle class.
// Prices are in the smallest currency unit.
type Tariff struct {
	BasePrice  int
	PricePerKm int
}

// getTariffs returns the static tariff table. The table is part of
// configuration, not runtime state, and is identical for every call.
func getTariffs() map[order.VehicleClass]Tariff {
	return map[order.VehicleClass]Tariff{
		order.VehicleBike:  {BasePrice: 50, PricePerKm: 10},
		order.VehicleCar:   {BasePrice: 100, PricePerKm: 15},
		order.VehicleTruck: {BasePrice: 200, PricePerKm: 25},
	}
}

// Pricing computes delivery prices from vehicle class and distance.
//
// The price formula is:
//
//	amount = basePrice + ceil(distanceKm * pricePerKm)
//
// The distance component always rounds up to the next smallest currency
// unit so the platform never under-charges on fractional distance. Price
// is deterministic: identical inputs always yield identical amounts.
//
// Example:
//
//	pricing := services.NewPricing()
//	amount, err := pricing.Price(order.VehicleBike, 4.3)
//	// amount == 50 + ceil(43) == 93
type Pricing struct{}

// NewPricing creates a Pricing service instance.
func NewPricing() Pricing {
	return Pricing{}
}

// Price returns the total amount for delivering with the given vehicle
// class over distanceKm kilometers.
//
// distanceKm must be a finite, non-negative number; zero is valid (same
// pickup and delivery address) and yields the base price. Invalid
// distances and unknown vehicle classes fail with a value-is-invalid
// error.
func (Pricing) Price(class order.VehicleClass, distanceKm float64) (int, error) {
	if err := class.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%v is not a finite non-negative distance", distanceKm))
	}

	tariff := getTariffs()[class]
	return tariff.BasePrice + int(math.Ceil(distanceKm*float64(tariff.PricePerKm))), nil
}

// TariffFor returns the tariff of a vehicle class, for display purposes.
func (Pricing) TariffFor(class order.VehicleClass) (Tariff, error) {
	if err := class.Validate(); err != nil {
		return Tariff{}, err
	}
	return getTariffs()[class], nil
}
