// Package http exposes the fulfillment core over a REST API plus an SSE
// stream bridging the notification fan-out to browsers.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/notifications"
	"fulfillment/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	submitOrderHandler     commands.SubmitOrderCommandHandler
	assignOrderHandler     commands.AssignOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	setAvailabilityHandler commands.SetStaffAvailabilityCommandHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getBacklogHandler      queries.GetBacklogQueryHandler
	broker                 notifications.Broker
	logger                 *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	setAvailabilityHandler commands.SetStaffAvailabilityCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getBacklogHandler queries.GetBacklogQueryHandler,
	broker notifications.Broker,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitOrderHandler:     submitOrderHandler,
		assignOrderHandler:     assignOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		setAvailabilityHandler: setAvailabilityHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		getBacklogHandler:      getBacklogHandler,
		broker:                 broker,
		logger:                 logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.SubmitOrder)
	api.POST("/orders/:orderID/status", s.TransitionOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.PUT("/staff/:staffID/availability", s.SetStaffAvailability)
	api.GET("/restaurants/:restaurantID/orders/active", s.GetActiveOrders)
	api.GET("/restaurants/:restaurantID/backlog", s.GetBacklog)
	api.GET("/notifications/stream", s.StreamNotifications)
}

// SubmitOrder handles POST /api/v1/orders. Submission and assignment are two
// use cases: the order is committed first, then assignment resolves to a
// staff member or the backlog.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := s.buildSubmitCommand(req)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	submitted, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapSubmitError(ctx, err)
	}

	assignCmd, err := commands.NewAssignOrderCommand(submitted.ID(), submitted.RestaurantID())
	if err != nil {
		return serverError(ctx, "Failed to build assignment")
	}

	result, err := s.assignOrderHandler.Handle(ctx.Request().Context(), assignCmd)
	if err != nil {
		// The order exists and is pending; assignment can be retried.
		s.logger.ErrorContext(ctx.Request().Context(), "Assignment after submission failed",
			"order_id", submitted.ID(), "error", err)
	}

	resp := SubmitOrderResponse{
		ID:          submitted.ID().String(),
		OrderNumber: submitted.OrderNumber(),
		Status:      submitted.Status().String(),
		Subtotal:    submitted.Subtotal().Amount(),
		TaxAmount:   submitted.TaxAmount().Amount(),
		TipAmount:   submitted.TipAmount().Amount(),
		TotalAmount: submitted.TotalAmount().Amount(),
	}
	if result.Assigned {
		resp.Status = order.Assigned.String()
		staffID := result.StaffID.String()
		resp.AssignedStaffID = &staffID
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// TransitionOrder handles POST /api/v1/orders/:orderID/status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	var actorStaffID *kernel.UUID
	if req.StaffID != nil {
		staffID, idErr := kernel.UUIDFromString(*req.StaffID)
		if idErr != nil {
			return badRequest(ctx, "Invalid staff ID")
		}
		actorStaffID = &staffID
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actorStaffID)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapTransitionError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel, the owner-level
// cancellation, authorized from any non-terminal state.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewCancelOrderByOwnerCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation: "+err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapTransitionError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetStaffAvailability handles PUT /api/v1/staff/:staffID/availability.
func (s *Server) SetStaffAvailability(ctx echo.Context) error {
	staffID, err := kernel.UUIDFromString(ctx.Param("staffID"))
	if err != nil {
		return badRequest(ctx, "Invalid staff ID")
	}

	var req SetAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetStaffAvailabilityCommand(staffID, req.Available)
	if err != nil {
		return badRequest(ctx, "Invalid availability data: "+err.Error())
	}

	if err = s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return notFoundError(ctx, "Staff member not found")
		}
		return serverError(ctx, "Failed to update availability")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/restaurants/:restaurantID/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantID"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID")
	}

	query, err := queries.NewGetActiveOrdersQuery(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	rows, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return serverError(ctx, "Failed to retrieve orders")
	}

	response := make([]ActiveOrder, len(rows))
	for i, row := range rows {
		response[i] = ActiveOrder{
			ID:          row.ID.String(),
			OrderNumber: row.OrderNumber,
			TableID:     row.TableID.String(),
			Status:      row.Status,
			TotalAmount: row.TotalAmount,
			CreatedAt:   row.CreatedAt,
		}
		if row.AssignedStaffID != nil {
			staffID := row.AssignedStaffID.String()
			response[i].AssignedStaffID = &staffID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetBacklog handles GET /api/v1/restaurants/:restaurantID/backlog.
func (s *Server) GetBacklog(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantID"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID")
	}

	query, err := queries.NewGetBacklogQuery(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	rows, err := s.getBacklogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return serverError(ctx, "Failed to retrieve backlog")
	}

	response := make([]BacklogEntry, len(rows))
	for i, row := range rows {
		response[i] = BacklogEntry{
			OrderID:     row.OrderID.String(),
			OrderNumber: row.OrderNumber,
			EnqueuedAt:  row.EnqueuedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) buildSubmitCommand(req SubmitOrderRequest) (commands.SubmitOrderCommand, error) {
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return commands.SubmitOrderCommand{}, err
	}

	tableID, err := kernel.UUIDFromString(req.TableID)
	if err != nil {
		return commands.SubmitOrderCommand{}, err
	}

	var sessionID *kernel.UUID
	if req.SessionID != nil {
		sID, sErr := kernel.UUIDFromString(*req.SessionID)
		if sErr != nil {
			return commands.SubmitOrderCommand{}, sErr
		}
		sessionID = &sID
	}

	method, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return commands.SubmitOrderCommand{}, err
	}

	tip, err := kernel.NewMoney(req.TipAmount)
	if err != nil {
		return commands.SubmitOrderCommand{}, err
	}

	lines := make([]commands.CartLine, len(req.Items))
	for i, item := range req.Items {
		menuItemID, itemErr := kernel.UUIDFromString(item.MenuItemID)
		if itemErr != nil {
			return commands.SubmitOrderCommand{}, itemErr
		}
		lines[i] = commands.CartLine{
			MenuItemID:   menuItemID,
			Quantity:     item.Quantity,
			Instructions: item.Instructions,
		}
	}

	return commands.NewSubmitOrderCommand(
		kernel.NewUUID(), restaurantID, tableID, sessionID, lines, method, tip)
}

func (s *Server) mapSubmitError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, ports.ErrMenuItemNotFound):
		return badRequest(ctx, "Unknown menu item in cart")
	case errors.Is(err, ports.ErrCatalogUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Catalog unavailable, try again",
		})
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, commands.ErrCartIsRequired),
		errors.Is(err, commands.ErrLineQuantityIsInvalid):
		return badRequest(ctx, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Order submission failed", "error", err)
		return serverError(ctx, "Failed to submit order")
	}
}

func (s *Server) mapTransitionError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFound):
		return notFoundError(ctx, "Order not found")
	case errors.Is(err, order.ErrUnauthorized):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "Actor is not the assigned staff member",
		})
	case errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Order transition failed", "error", err)
		return serverError(ctx, "Failed to transition order")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFoundError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func serverError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
