// Package http exposes the order API and the provider webhook endpoints.
// Handlers translate between JSON payloads and application commands, queries
// and events; no business rules live here.
package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UpsertHandler processes order upsert commands.
type UpsertHandler interface {
	Handle(ctx context.Context, cmd commands.UpsertOrderCommand) error
}

// EventPublisher routes canonical events to their handlers.
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.EventType, notification events.Notification)
}

// OrderReader runs single-order lookups.
type OrderReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
}

// OrderLister runs the full order listing query.
type OrderLister interface {
	Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderResponse, error)
}

// OrdersByStatusReader runs status-filtered order queries.
type OrdersByStatusReader interface {
	Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderResponse, error)
}

// OrdersByCustomerReader runs customer-filtered order queries.
type OrdersByCustomerReader interface {
	Handle(ctx context.Context, query queries.GetOrdersByCustomerQuery) ([]queries.OrderResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	upsertHandler UpsertHandler
	publisher     EventPublisher

	getOrderHandler            OrderReader
	getAllOrdersHandler        OrderLister
	getOrdersByStatusHandler   OrdersByStatusReader
	getOrdersByCustomerHandler OrdersByCustomerReader

	orderIDPrefix string
}

// NewServer creates an HTTP server with the required command, query and
// dispatch dependencies. orderIDPrefix is used when an upsert arrives
// without an order id.
func NewServer(
	upsertHandler UpsertHandler,
	publisher EventPublisher,
	getOrderHandler OrderReader,
	getAllOrdersHandler OrderLister,
	getOrdersByStatusHandler OrdersByStatusReader,
	getOrdersByCustomerHandler OrdersByCustomerReader,
	orderIDPrefix string,
) *Server {
	return &Server{
		upsertHandler:              upsertHandler,
		publisher:                  publisher,
		getOrderHandler:            getOrderHandler,
		getAllOrdersHandler:        getAllOrdersHandler,
		getOrdersByStatusHandler:   getOrdersByStatusHandler,
		getOrdersByCustomerHandler: getOrdersByCustomerHandler,
		orderIDPrefix:              orderIDPrefix,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1 behind an x-api-key check.
func (s *Server) RegisterRoutes(e *echo.Echo, apiSecret string) {
	api := e.Group("/api/v1", middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:x-api-key",
		Validator: func(key string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(apiSecret)) == 1, nil
		},
		// a request without the header is unauthorized, not malformed
		ErrorHandler: func(_ error, _ echo.Context) error {
			return echo.ErrUnauthorized
		},
	}))

	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/customer/:customerId", s.GetOrdersByCustomer)
	api.GET("/orders/status/:status", s.GetOrdersByStatus)
	api.POST("/orders", s.UpsertOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/webhook/payment", s.PaymentWebhook)
	api.POST("/webhook/shipment", s.ShipmentWebhook)
}

// GetOrders handles GET /api/v1/orders - retrieves all orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := order.ParseID(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

// GetOrdersByStatus handles GET /api/v1/orders/status/:status.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.Param("status"))
	if err != nil {
		return badRequest(ctx, "Invalid order status")
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return badRequest(ctx, "Invalid order status")
	}

	orders, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrdersByCustomer handles GET /api/v1/orders/customer/:customerId.
func (s *Server) GetOrdersByCustomer(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetOrdersByCustomerQuery(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	orders, err := s.getOrdersByCustomerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// UpsertOrder handles POST /api/v1/orders - creates or updates an order.
// The claimed status in the payload can never change order state; it only
// serves as a consistency check against the stored status.
func (s *Server) UpsertOrder(ctx echo.Context) error {
	var request OrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := s.buildUpsertCommand(request)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.upsertHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			return badRequest(ctx, "Order status does not match: "+err.Error())
		}
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UpsertOrderResponse{OrderID: cmd.OrderID().String()})
}

func (s *Server) buildUpsertCommand(request OrderRequest) (commands.UpsertOrderCommand, error) {
	var orderID order.ID
	var err error
	if request.OrderID == "" {
		orderID = order.GenerateID(s.orderIDPrefix)
	} else if orderID, err = order.ParseID(request.OrderID); err != nil {
		return commands.UpsertOrderCommand{}, err
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return commands.UpsertOrderCommand{}, err
	}

	claimedStatus := order.Unknown
	if request.Status != "" {
		if claimedStatus, err = order.StatusFromString(request.Status); err != nil {
			return commands.UpsertOrderCommand{}, err
		}
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		productID, productErr := kernel.UUIDFromString(itemRequest.ProductID)
		if productErr != nil {
			return commands.UpsertOrderCommand{}, productErr
		}

		item, itemErr := order.NewItem(productID, itemRequest.Quantity, itemRequest.UnitPrice)
		if itemErr != nil {
			return commands.UpsertOrderCommand{}, itemErr
		}

		items = append(items, item)
	}

	orderDate := request.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	return commands.NewUpsertOrderCommand(orderID, customerID, orderDate, items, claimedStatus, true)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
// Dispatch is acknowledged with 200 regardless of whether the cancellation
// can be applied; the processing outcome is the dispatcher's concern.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := order.ParseID(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	s.publisher.Publish(ctx.Request().Context(), events.Cancelled,
		events.CancellationRequest{OrderID: orderID.String()})

	return ctx.NoContent(http.StatusOK)
}

// PaymentWebhook handles POST /api/v1/webhook/payment.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var request PaymentWebhookRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	notification := events.PaymentNotification{
		OrderID:       request.OrderID,
		Amount:        request.Amount,
		Provider:      request.Provider,
		TransactionID: request.TransactionID,
		Status:        request.Status,
	}

	return s.dispatchWebhook(ctx, notification)
}

// ShipmentWebhook handles POST /api/v1/webhook/shipment.
func (s *Server) ShipmentWebhook(ctx echo.Context) error {
	var request ShipmentWebhookRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	notification := events.ShipmentNotification{
		OrderID:      request.OrderID,
		Carrier:      request.Carrier,
		TrackingCode: request.TrackingCode,
		Status:       request.Status,
	}

	return s.dispatchWebhook(ctx, notification)
}

// dispatchWebhook normalizes the notification and publishes it.
// An unrecognized provider status is the caller's mistake and fails with 400
// before anything reaches the state machine.
func (s *Server) dispatchWebhook(ctx echo.Context, notification events.Notification) error {
	eventType, err := events.MapEventType(notification)
	if err != nil {
		return badRequest(ctx, "Unknown notification status: "+err.Error())
	}

	s.publisher.Publish(ctx.Request().Context(), eventType, notification)

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorJSON maps application errors onto HTTP status codes.
func errorJSON(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
