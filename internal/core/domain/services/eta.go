package services

import (
	"fmt"
	"math"
	"time"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"
)

// handlingTime is the fixed pickup overhead added to every estimate.
const handlingTime = 15 * time.Minute

// getAverageSpeeds returns assumed urban travel speeds per vehicle class,
// in km/h.
func getAverageSpeeds() map[order.VehicleClass]float64 {
	return map[order.VehicleClass]float64{
		order.VehicleBike:  25,
		order.VehicleCar:   30,
		order.VehicleTruck: 20,
	}
}

// EtaEstimator computes estimated delivery times from route distance and
// vehicle class. Like Pricing it is pure: the estimate depends only on
// the inputs and the static speed table.
type EtaEstimator struct{}

// NewEtaEstimator creates an EtaEstimator instance.
func NewEtaEstimator() EtaEstimator {
	return EtaEstimator{}
}

// TravelTime returns the estimated pickup-to-delivery duration for the
// given vehicle class and distance, including the fixed handling overhead.
func (EtaEstimator) TravelTime(class order.VehicleClass, distanceKm float64) (time.Duration, error) {
	if err := class.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%v is not a finite non-negative distance", distanceKm))
	}

	speed := getAverageSpeeds()[class]
	travel := time.Duration(distanceKm / speed * float64(time.Hour))
	return handlingTime + travel, nil
}

// EstimateAt returns the absolute estimated delivery time for a delivery
// starting at the given instant.
func (e EtaEstimator) EstimateAt(start time.Time, class order.VehicleClass, distanceKm float64) (time.Time, error) {
	travel, err := e.TravelTime(class, distanceKm)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(travel), nil
}
