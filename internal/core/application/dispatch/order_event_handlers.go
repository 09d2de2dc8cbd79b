package dispatch

import (
	"context"
	"fmt"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/domain/model/order"
)

// StatusUpdater is the command-handler contract the event handlers delegate to.
type StatusUpdater interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error
}

// OrderEventHandlers translates canonical events into status update commands.
// One instance serves all four event types.
type OrderEventHandlers struct {
	statusUpdater StatusUpdater
}

// NewOrderEventHandlers creates the event handler set.
func NewOrderEventHandlers(statusUpdater StatusUpdater) OrderEventHandlers {
	return OrderEventHandlers{statusUpdater: statusUpdater}
}

// RegisterAll binds a handler for each canonical event type.
func (h OrderEventHandlers) RegisterAll(d *Dispatcher) {
	d.Register(events.Confirmed, h.HandleConfirmed)
	d.Register(events.Cancelled, h.eventHandler(events.Cancelled))
	d.Register(events.Shipped, h.eventHandler(events.Shipped))
	d.Register(events.Delivered, h.eventHandler(events.Delivered))
}

// HandleConfirmed applies a confirmation event. The paid amount travels with
// the command so the handler can reconcile it against the order total.
func (h OrderEventHandlers) HandleConfirmed(ctx context.Context, notification events.Notification) error {
	payment, ok := notification.(events.PaymentNotification)
	if !ok {
		return fmt.Errorf("%w: confirmation expects a payment notification, got %T",
			events.ErrUnknownSource, notification)
	}

	orderID, err := order.ParseID(payment.OrderID)
	if err != nil {
		return err
	}

	amountPaid := payment.Amount
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Confirmed, &amountPaid)
	if err != nil {
		return err
	}

	return h.statusUpdater.Handle(ctx, cmd)
}

// eventHandler builds the amount-less handler shared by cancellation,
// shipment and delivery events.
func (h OrderEventHandlers) eventHandler(eventType events.EventType) Handler {
	return func(ctx context.Context, notification events.Notification) error {
		orderID, err := order.ParseID(notification.NotificationOrderID())
		if err != nil {
			return err
		}

		cmd, err := commands.NewUpdateOrderStatusCommand(orderID, eventType, nil)
		if err != nil {
			return err
		}

		return h.statusUpdater.Handle(ctx, cmd)
	}
}
