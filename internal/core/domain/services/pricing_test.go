package services_test

import (
	"math"
	"testing"

	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricing_Price(t *testing.T) {
	pricing := services.NewPricing()

	t.Run("bike over 4.3 km costs 93", func(t *testing.T) {
		amount, err := pricing.Price(order.VehicleBike, 4.3)

		require.NoError(t, err)
		assert.Equal(t, 93, amount)
	})

	t.Run("zero distance yields base price", func(t *testing.T) {
		cases := map[order.VehicleClass]int{
			order.VehicleBike:  50,
			order.VehicleCar:   100,
			order.VehicleTruck: 200,
		}

		for class, want := range cases {
			amount, err := pricing.Price(class, 0)
			require.NoError(t, err)
			assert.Equal(t, want, amount)
		}
	})

	t.Run("fractional distance rounds up, never down", func(t *testing.T) {
		// 0.01 km on a bike is 0.1 currency units of distance price,
		// which must be charged as 1.
		amount, err := pricing.Price(order.VehicleBike, 0.01)

		require.NoError(t, err)
		assert.Equal(t, 51, amount)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first, err := pricing.Price(order.VehicleCar, 12.75)
		require.NoError(t, err)

		second, err := pricing.Price(order.VehicleCar, 12.75)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("monotonically non-decreasing in distance", func(t *testing.T) {
		for _, class := range []order.VehicleClass{order.VehicleBike, order.VehicleCar, order.VehicleTruck} {
			base, err := pricing.Price(class, 0)
			require.NoError(t, err)

			prev := base
			for d := 0.0; d <= 50; d += 0.37 {
				amount, priceErr := pricing.Price(class, d)
				require.NoError(t, priceErr)
				assert.GreaterOrEqual(t, amount, prev)
				assert.GreaterOrEqual(t, amount, base)
				prev = amount
			}
		}
	})

	t.Run("rejects negative distance", func(t *testing.T) {
		_, err := pricing.Price(order.VehicleBike, -1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects NaN and infinite distance", func(t *testing.T) {
		_, err := pricing.Price(order.VehicleBike, math.NaN())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = pricing.Price(order.VehicleBike, math.Inf(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unknown vehicle class", func(t *testing.T) {
		_, err := pricing.Price(order.VehicleUnknown, 5)

		require.Error(t, err)
	})
}

func TestPricing_TariffFor(t *testing.T) {
	pricing := services.NewPricing()

	tariff, err := pricing.TariffFor(order.VehicleTruck)
	require.NoError(t, err)
	assert.Equal(t, 200, tariff.BasePrice)
	assert.Equal(t, 25, tariff.PricePerKm)

	_, err = pricing.TariffFor(order.VehicleUnknown)
	require.Error(t, err)
}
