package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	actor := testActor(t, kernel.RolePartner)

	token, err := service.GenerateToken(actor)
	require.NoError(t, err)

	parsed, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, parsed.ID().IsEqual(actor.ID()))
	assert.True(t, parsed.IsPartner())
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(testActor(t, kernel.RoleCustomer))
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	service := NewJWTService("test-secret", -time.Minute)

	token, err := service.GenerateToken(testActor(t, kernel.RoleCustomer))
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.Error(t, err)
}

func TestMiddleware_AuthenticatesBearerToken(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	actor := testActor(t, kernel.RoleCustomer)
	token, err := service.GenerateToken(actor)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen kernel.Actor
	handler := service.Middleware()(func(c echo.Context) error {
		var ctxErr error
		seen, ctxErr = actorFromContext(c)
		return ctxErr
	})

	require.NoError(t, handler(c))
	assert.True(t, seen.ID().IsEqual(actor.ID()))
}

func TestMiddleware_AcceptsTokenQueryParam(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	token, err := service.GenerateToken(testActor(t, kernel.RoleCustomer))
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := service.Middleware()(func(echo.Context) error {
		called = true
		return nil
	})

	require.NoError(t, handler(c))
	assert.True(t, called)
}

func TestMiddleware_RejectsMissingAndInvalidTokens(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	e := echo.New()

	for _, header := range []string{"", "Bearer not-a-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := service.Middleware()(func(echo.Context) error {
			t.Errorf("handler must not run for header %q", header)
			return nil
		})

		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusUnauthorized, body.Code)
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "abc"), http.StatusNotFound},
		{"unauthorized", fmt.Errorf("%w: nope", order.ErrUnauthorized), http.StatusForbidden},
		{"conflict", errs.NewConflictError("order", "abc"), http.StatusConflict},
		{"terminal state", fmt.Errorf("%w: frozen", order.ErrTerminalStateViolation), http.StatusUnprocessableEntity},
		{"invalid transition", fmt.Errorf("%w: bad edge", order.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{"already assigned", fmt.Errorf("%w", order.ErrAlreadyAssigned), http.StatusUnprocessableEntity},
		{"not assigned partner", fmt.Errorf("%w", order.ErrNotAssignedPartner), http.StatusUnprocessableEntity},
		{"tracking inactive", fmt.Errorf("%w", order.ErrTrackingInactive), http.StatusUnprocessableEntity},
		{"stale position", fmt.Errorf("%w", order.ErrStalePosition), http.StatusUnprocessableEntity},
		{"unavailable", errs.NewUnavailableError("distance provider"), http.StatusServiceUnavailable},
		{"value required", errs.NewValueIsRequiredError("pickup address"), http.StatusBadRequest},
		{"value out of range", errs.NewValueIsOutOfRangeError("lat", 91, -90, 90), http.StatusBadRequest},
		{"role refused", commands.ErrOnlyCustomersCreateOrders, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, writeError(c, tc.err))
			assert.Equal(t, tc.expected, rec.Code)

			var body Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.expected, body.Code)
		})
	}
}
