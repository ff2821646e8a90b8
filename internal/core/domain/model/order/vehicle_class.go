package order

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// VehicleClass identifies the vehicle category requested for a delivery.
// The class is fixed at order creation and selects the pricing tariff.
type VehicleClass int

const (
	// VehicleUnknown represents an invalid or undefined vehicle class.
	// This value (0) helps catch uninitialized VehicleClass values.
	VehicleUnknown VehicleClass = iota

	// VehicleBike is a two-wheeler for small packages.
	VehicleBike

	// VehicleCar is a passenger car for medium loads.
	VehicleCar

	// VehicleTruck is a light truck for bulky loads.
	VehicleTruck
)

func getVehicleClassStrings() map[VehicleClass]string {
	return map[VehicleClass]string{
		VehicleUnknown: "unknown",
		VehicleBike:    "bike",
		VehicleCar:     "car",
		VehicleTruck:   "truck",
	}
}

func getValidVehicleClassStrings() map[VehicleClass]string {
	//nolint:exhaustive // VehicleUnknown is intentionally excluded as it's invalid
	return map[VehicleClass]string{
		VehicleBike:  "bike",
		VehicleCar:   "car",
		VehicleTruck: "truck",
	}
}

// VehicleClassFromString parses a vehicle class from its wire
// representation ("bike", "car" or "truck").
func VehicleClassFromString(s string) (VehicleClass, error) {
	for class, str := range getValidVehicleClassStrings() {
		if str == s {
			return class, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle class", fmt.Errorf("%q is not a valid vehicle class", s))
}

// Validate checks if the VehicleClass is a member of the fixed set.
func (v VehicleClass) Validate() error {
	if _, ok := getValidVehicleClassStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle class", fmt.Errorf("%d is not a valid vehicle class", v))
	}
	return nil
}

// String returns the wire name of the vehicle class.
// It implements the fmt.Stringer interface and is safe on any value.
func (v VehicleClass) String() string {
	if str, ok := getVehicleClassStrings()[v]; ok {
		return str
	}
	return "unknown"
}
