package ports

import (
	"context"

	"swiftdrop/internal/pkg/errs"
)

// ErrDistanceUnavailable is returned when the distance provider cannot
// resolve a route between two addresses. Order creation must be refused
// when the distance cannot be determined; the price is never guessed.
var ErrDistanceUnavailable = errs.NewUnavailableError("distance between addresses could not be resolved")

// DistanceCalculator resolves the driving distance between two free-text
// addresses using an external geocoding/distance provider.
type DistanceCalculator interface {
	// DistanceKm returns the driving distance in kilometers from origin
	// to destination. Fails with an error wrapping errs.ErrUnavailable
	// when the provider cannot resolve the route or is unreachable.
	DistanceKm(ctx context.Context, origin string, destination string) (float64, error)
}
