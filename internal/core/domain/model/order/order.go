package order

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for a purchase order: identity, customer,
// line items and lifecycle status, treated as one consistency boundary.
//
// Invariants:
//   - the identifier and customer must be valid value objects
//   - the item list is non-empty and order-preserving
//   - totalAmount is derived from the items on every construction and
//     detail update; it is never settable independently
//   - status only changes along the transition table, via ChangeStatus
//
// New orders always start in Pending: a client cannot create an order in any
// other state, and direct upserts never change status (that path is guarded
// in the upsert use case).
type Order struct {
	id          ID
	customerID  kernel.UUID
	orderDate   time.Time
	items       []Item
	status      Status
	totalAmount float64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new order in Pending status.
// The total amount is computed from the items.
func NewOrder(id ID, customerID kernel.UUID, orderDate time.Time, items []Item) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setOrderDate(orderDate),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rehydrates an order from persistence with an explicit status.
// The status must be valid; the total amount is recomputed from the items so
// a stored total can never drift from the line items.
func RestoreOrder(
	id ID,
	customerID kernel.UUID,
	orderDate time.Time,
	items []Item,
	status Status,
) (*Order, error) {
	order, err := NewOrder(id, customerID, orderDate, items)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	order.status = status

	return order, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() ID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// OrderDate returns the order placement timestamp.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Items returns a defensive copy of the line items, in order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TotalAmount returns the derived order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// UpdateDetails replaces the non-status fields of the order and recomputes
// the total amount. It is all-or-nothing: validation failures leave the
// order untouched. Status is deliberately not part of this operation; all
// status changes flow through ChangeStatus.
func (o *Order) UpdateDetails(customerID kernel.UUID, orderDate time.Time, items []Item) error {
	updated := Order{isConstructed: true}
	if err := errors.Join(
		updated.setCustomerID(customerID),
		updated.setOrderDate(orderDate),
		updated.setItems(items),
	); err != nil {
		return err
	}

	o.customerID = updated.customerID
	o.orderDate = updated.orderDate
	o.items = updated.items
	o.totalAmount = updated.totalAmount
	return nil
}

// ChangeStatus applies a status transition.
// Fails with *InvalidTransitionError when the transition table does not
// allow the change; the order is left unmodified on failure.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}

	copied := make([]Item, len(items))
	copy(copied, items)

	total := 0.0
	for _, item := range copied {
		total += item.Subtotal()
	}

	o.items = copied
	o.totalAmount = total
	return nil
}
