package commands

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrUpsertOrderCommandIsNotConstructed = errors.New(
	"UpsertOrderCommand must be created via NewUpsertOrderCommand constructor",
)

// UpsertOrderCommand represents a request to create an order or update its
// details. The claimed status is only used as a consistency check for
// client-originated requests; it can never move the state machine.
type UpsertOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       order.ID
	customerID    kernel.UUID
	orderDate     time.Time
	items         []order.Item
	claimedStatus order.Status
	clientOrigin  bool

	guard guard.ConstructorGuard
}

// NewUpsertOrderCommand creates a command to create or update an order.
// claimedStatus is the status the caller believes the order is in; pass
// order.Unknown when the caller makes no claim. clientOrigin marks requests
// arriving through the public order API as opposed to trusted internal flows.
func NewUpsertOrderCommand(
	orderID order.ID,
	customerID kernel.UUID,
	orderDate time.Time,
	items []order.Item,
	claimedStatus order.Status,
	clientOrigin bool,
) (UpsertOrderCommand, error) {
	cmd := UpsertOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setOrderDate(orderDate),
		cmd.setItems(items),
		cmd.setClaimedStatus(claimedStatus),
	); err != nil {
		return UpsertOrderCommand{}, err
	}

	cmd.clientOrigin = clientOrigin
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpsertOrderCommandIsNotConstructed if validation fails.
func (c UpsertOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpsertOrderCommandIsNotConstructed)
}

// OrderID returns the order identifier targeted by the upsert.
func (c UpsertOrderCommand) OrderID() order.ID {
	return c.orderID
}

// CustomerID returns the identifier of the customer placing the order.
func (c UpsertOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// OrderDate returns the timestamp the order was placed.
func (c UpsertOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// Items returns the order line items.
func (c UpsertOrderCommand) Items() []order.Item {
	return c.items
}

// ClaimedStatus returns the status the caller believes the order carries.
// order.Unknown means the caller made no claim.
func (c UpsertOrderCommand) ClaimedStatus() order.Status {
	return c.claimedStatus
}

// ClientOrigin reports whether the request arrived through the public API.
func (c UpsertOrderCommand) ClientOrigin() bool {
	return c.clientOrigin
}

func (c *UpsertOrderCommand) setOrderID(orderID order.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpsertOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *UpsertOrderCommand) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}

	c.orderDate = orderDate
	return nil
}

func (c *UpsertOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *UpsertOrderCommand) setClaimedStatus(claimedStatus order.Status) error {
	if claimedStatus != order.Unknown {
		if err := claimedStatus.Validate(); err != nil {
			return err
		}
	}

	c.claimedStatus = claimedStatus
	return nil
}
