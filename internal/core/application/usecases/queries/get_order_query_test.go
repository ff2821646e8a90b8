package queries_test

import (
	"testing"

	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func TestNewGetOrderQuery_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	customer := newActor(t, kernel.RoleCustomer)

	query, err := queries.NewGetOrderQuery(orderID, customer)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
}

func TestNewGetOrderQuery_InvalidInputs(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer)

	_, err := queries.NewGetOrderQuery(kernel.UUID{}, customer)
	require.Error(t, err)

	_, err = queries.NewGetOrderQuery(kernel.NewUUID(), kernel.Actor{})
	require.Error(t, err)
}

func TestGetOrderQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetOrderQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetOrdersQuery_Success(t *testing.T) {
	partner := newActor(t, kernel.RolePartner)

	query, err := queries.NewGetOrdersQuery(partner)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.Actor().IsPartner())
}

func TestGetOrdersQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetOrdersQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetOrdersQueryIsNotConstructed)
}

func TestGetOrderPositionQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetOrderPositionQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetOrderPositionQueryIsNotConstructed)
}
