package services_test

import (
	"testing"
	"time"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEtaEstimator_TravelTime(t *testing.T) {
	estimator := services.NewEtaEstimator()

	t.Run("bike covers 25 km in an hour plus handling", func(t *testing.T) {
		travel, err := estimator.TravelTime(order.VehicleBike, 25)

		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute+time.Hour, travel)
	})

	t.Run("zero distance still includes handling time", func(t *testing.T) {
		travel, err := estimator.TravelTime(order.VehicleTruck, 0)

		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, travel)
	})

	t.Run("longer distance never shortens the estimate", func(t *testing.T) {
		short, err := estimator.TravelTime(order.VehicleCar, 5)
		require.NoError(t, err)

		long, err := estimator.TravelTime(order.VehicleCar, 15)
		require.NoError(t, err)

		assert.Greater(t, long, short)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := estimator.TravelTime(order.VehicleUnknown, 5)
		require.Error(t, err)

		_, err = estimator.TravelTime(order.VehicleBike, -1)
		require.Error(t, err)
	})
}

func TestEtaEstimator_EstimateAt(t *testing.T) {
	estimator := services.NewEtaEstimator()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	eta, err := estimator.EstimateAt(start, order.VehicleBike, 25)

	require.NoError(t, err)
	assert.True(t, eta.Equal(start.Add(15*time.Minute+time.Hour)))
}
