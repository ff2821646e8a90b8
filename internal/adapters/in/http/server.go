// Package http exposes the delivery booking service over REST and
// websocket endpoints using the echo framework.
package http

import (
	"errors"
	"net/http"
	"time"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server wires HTTP requests to application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	assignOrderHandler      commands.AssignOrderCommandHandler
	startDeliveryHandler    commands.StartDeliveryCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	reportPositionHandler   commands.ReportPositionCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getOrdersHandler        queries.GetOrdersQueryHandler
	getOrderPositionHandler queries.GetOrderPositionQueryHandler

	notifications ports.NotificationChannel
	auth          *JWTService
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	reportPositionHandler commands.ReportPositionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderPositionHandler queries.GetOrderPositionQueryHandler,
	notifications ports.NotificationChannel,
	auth *JWTService,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		assignOrderHandler:      assignOrderHandler,
		startDeliveryHandler:    startDeliveryHandler,
		completeDeliveryHandler: completeDeliveryHandler,
		cancelOrderHandler:      cancelOrderHandler,
		reportPositionHandler:   reportPositionHandler,
		getOrderHandler:         getOrderHandler,
		getOrdersHandler:        getOrdersHandler,
		getOrderPositionHandler: getOrderPositionHandler,
		notifications:           notifications,
		auth:                    auth,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", s.auth.Middleware())
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/start", s.StartDelivery)
	api.POST("/orders/:id/complete", s.CompleteDelivery)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/position", s.ReportPosition)
	api.GET("/orders/:id/track", s.TrackOrder)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - books a new delivery.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Not authenticated",
		})
	}

	var req CreateOrderRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	vehicleClass, err := order.VehicleClassFromString(req.VehicleClass)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid vehicle class: " + req.VehicleClass,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor, req.PickupAddress, req.DeliveryAddress, vehicleClass, req.SpecialInstructions)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.createOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return s.respondWithOrder(c, http.StatusCreated, orderID, actor)
}

// GetOrders handles GET /api/v1/orders - lists the actor's orders.
func (s *Server) GetOrders(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Not authenticated",
		})
	}

	query, err := queries.NewGetOrdersQuery(actor)
	if err != nil {
		return writeError(c, err)
	}

	orders, err := s.getOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, resp := range orders {
		response[i] = toOrderResponse(resp)
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	actor, orderID, ok := s.requestScope(c)
	if !ok {
		return nil
	}

	return s.respondWithOrder(c, http.StatusOK, orderID, actor)
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignOrder(c echo.Context) error {
	actor, orderID, ok := s.requestScope(c)
	if !ok {
		return nil
	}

	var req AssignOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// A partner accepting an order assigns it to themselves; the body
	// only needs a partner ID when an administrator assigns manually.
	partnerID := actor.ID()
	if req.PartnerID != "" {
		parsed, err := kernel.UUIDFromString(req.PartnerID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid partner ID",
			})
		}
		partnerID = parsed
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, actor, partnerID)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.assignOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID, actor)
}

// StartDelivery handles POST /api/v1/orders/:id/start.
func (s *Server) StartDelivery(c echo.Context) error {
	actor, orderID, ok := s.requestScope(c)
	if !ok {
		return nil
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID, actor)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.startDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID, actor)
}

// CompleteDelivery handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteDelivery(c echo.Context) error {
	actor, orderID, ok := s.requestScope(c)
	if !ok {
		return nil
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, actor)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.completeDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID, actor)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, orderID, ok := s.requestScope(c)
	if !ok {
		return nil
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.cancelOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID, actor)
}

// ReportPosition handles POST /api/v1/orders/:id/position.
func (s *Server) ReportPosition(c echo.Context) error {
	actor, orderID, ok := s.requestScope(c)
	if !ok {
		return nil
	}

	var req ReportPositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	position, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return writeError(c, err)
	}

	observedAt := req.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	cmd, err := commands.NewReportPositionCommand(orderID, actor, position, observedAt)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.reportPositionHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}

// requestScope extracts the authenticated actor and the order ID from the
// path. On failure it writes the error response itself and reports ok as
// false; the handler must return nil without writing again.
func (s *Server) requestScope(c echo.Context) (kernel.Actor, kernel.UUID, bool) {
	actor, err := actorFromContext(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Not authenticated",
		})
		return kernel.Actor{}, kernel.UUID{}, false
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
		return kernel.Actor{}, kernel.UUID{}, false
	}

	return actor, orderID, true
}

func (s *Server) respondWithOrder(c echo.Context, status int, orderID kernel.UUID, actor kernel.Actor) error {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return writeError(c, err)
	}

	resp, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(status, toOrderResponse(resp))
}

// writeError maps domain and infrastructure errors to HTTP status codes.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, order.ErrTerminalStateViolation),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrNotAssignedPartner),
		errors.Is(err, order.ErrTrackingInactive),
		errors.Is(err, order.ErrStalePosition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrOnlyCustomersCreateOrders):
		status = http.StatusBadRequest
	}

	return c.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
