package geo_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftdrop/internal/adapters/out/geo"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *geo.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := geo.NewClient(server.URL, "test-key")
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := geo.NewClient("", "key")
	require.Error(t, err)

	_, err = geo.NewClient("http://example.com", "")
	require.Error(t, err)
}

func TestClient_DistanceKm_Success(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MG Road 1", r.URL.Query().Get("origins"))
		assert.Equal(t, "Church Street 15", r.URL.Query().Get("destinations"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "OK", "distance": {"value": 4300}}]}]
		}`))
	})

	// Act
	distanceKm, err := client.DistanceKm(t.Context(), "MG Road 1", "Church Street 15")

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 4.3, distanceKm, 1e-9)
}

func TestClient_DistanceKm_RouteNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "NOT_FOUND"}]}]
		}`))
	})

	_, err := client.DistanceKm(t.Context(), "Nowhere 1", "Nowhere 2")

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrDistanceUnavailable)
}

func TestClient_DistanceKm_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.DistanceKm(t.Context(), "A", "B")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestClient_DistanceKm_ProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client, err := geo.NewClient(server.URL, "test-key")
	require.NoError(t, err)
	server.Close() // connection refused from here on

	_, err = client.DistanceKm(t.Context(), "A", "B")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestClient_DistanceKm_DeniedKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "rows": []}`))
	})

	_, err := client.DistanceKm(t.Context(), "A", "B")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestClient_DistanceKm_EmptyAddresses(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.DistanceKm(t.Context(), "", "B")
	require.Error(t, err)

	_, err = client.DistanceKm(t.Context(), "A", "")
	require.Error(t, err)
}
