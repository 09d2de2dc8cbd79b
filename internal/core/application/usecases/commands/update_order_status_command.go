package commands

import (
	"errors"

	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order through its
// lifecycle in response to a canonical event. AmountPaid is only present for
// confirmation events, where it feeds payment reconciliation.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    order.ID
	event      events.EventType
	amountPaid *float64

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to apply a canonical event to
// an order. amountPaid must be non-nil for Confirmed events and nil for all
// others; the handler enforces the Confirmed-side requirement.
func NewUpdateOrderStatusCommand(
	orderID order.ID, event events.EventType, amountPaid *float64,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setEvent(event),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	if amountPaid != nil {
		paid := *amountPaid
		cmd.amountPaid = &paid
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order the event applies to.
func (c UpdateOrderStatusCommand) OrderID() order.ID {
	return c.orderID
}

// Event returns the canonical event driving the status change.
func (c UpdateOrderStatusCommand) Event() events.EventType {
	return c.event
}

// AmountPaid returns the paid amount reported with a confirmation event,
// or nil when the event carried no amount.
func (c UpdateOrderStatusCommand) AmountPaid() *float64 {
	if c.amountPaid == nil {
		return nil
	}
	paid := *c.amountPaid
	return &paid
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID order.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setEvent(event events.EventType) error {
	if err := event.Validate(); err != nil {
		return err
	}

	c.event = event
	return nil
}
