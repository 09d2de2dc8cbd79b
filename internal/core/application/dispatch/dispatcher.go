// Package dispatch routes canonical order events to their handlers.
//
// The handler table is built once by the composition root at startup and
// never mutated afterwards, so Publish needs no locking. Handler failures
// never propagate to the caller: a webhook acknowledgement must not depend
// on whether this service could apply the event.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
)

// Handler processes one canonical event for the notification that carried it.
type Handler func(ctx context.Context, notification events.Notification) error

// Dispatcher is a synchronous in-process event router.
// Register all handlers before the first Publish; the table is not safe for
// concurrent mutation.
type Dispatcher struct {
	handlers map[events.EventType]Handler
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		handlers: make(map[events.EventType]Handler),
		logger:   logger.With("component", "dispatcher"),
	}
}

// Register binds a handler to an event type, replacing any previous binding.
func (d *Dispatcher) Register(eventType events.EventType, handler Handler) {
	d.handlers[eventType] = handler
}

// EnsureRegistered reports the event types that have no handler bound.
// The composition root calls it after wiring and treats an error as fatal.
func (d *Dispatcher) EnsureRegistered(eventTypes ...events.EventType) error {
	var missing []error
	for _, eventType := range eventTypes {
		if _, ok := d.handlers[eventType]; !ok {
			missing = append(missing, fmt.Errorf("no handler registered for %s", eventType))
		}
	}

	return errors.Join(missing...)
}

// Publish routes the notification to the handler bound to eventType and
// swallows the handler's error. Expected domain outcomes (invalid
// transition, amount mismatch, unknown order) log at WARN; anything else is
// a programmer or infrastructure problem and logs at ERROR.
func (d *Dispatcher) Publish(ctx context.Context, eventType events.EventType, notification events.Notification) {
	handler, ok := d.handlers[eventType]
	if !ok {
		d.logger.ErrorContext(ctx, "no handler for event",
			"event", eventType.String(),
			"orderId", notification.NotificationOrderID())
		return
	}

	d.logger.InfoContext(ctx, "dispatching event",
		"event", eventType.String(),
		"orderId", notification.NotificationOrderID())

	err := handler(ctx, notification)
	if err == nil {
		return
	}

	if isExpectedDomainFailure(err) {
		d.logger.WarnContext(ctx, "event not applied",
			"event", eventType.String(),
			"orderId", notification.NotificationOrderID(),
			"reason", err)
		return
	}

	d.logger.ErrorContext(ctx, "event handler failed",
		"event", eventType.String(),
		"orderId", notification.NotificationOrderID(),
		"error", err)
}

func isExpectedDomainFailure(err error) bool {
	return errors.Is(err, order.ErrInvalidTransition) ||
		errors.Is(err, commands.ErrAmountMismatch) ||
		errors.Is(err, errs.ErrObjectNotFound)
}
