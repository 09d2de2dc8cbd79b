package events

import (
	"fmt"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
)

// EventType is the canonical event vocabulary every external notification is
// normalized into before it can affect order state. Each event type maps to
// exactly one target status.
type EventType int

const (
	// UnknownEvent represents an invalid or undefined event type.
	UnknownEvent EventType = iota

	// Confirmed is emitted for an approved payment; carries the paid amount.
	Confirmed

	// Cancelled is emitted for a declined or failed payment and for
	// explicit cancellation requests.
	Cancelled

	// Shipped is emitted when the carrier dispatches the order.
	Shipped

	// Delivered is emitted when the carrier delivers the order.
	Delivered
)

func eventTypeNames() map[EventType]string {
	return map[EventType]string{
		UnknownEvent: "UNKNOWN",
		Confirmed:    "CONFIRMED",
		Cancelled:    "CANCELLED",
		Shipped:      "SHIPPED",
		Delivered:    "DELIVERED",
	}
}

// AllEventTypes returns the four canonical event types.
// Used by the composition root to verify dispatcher registration at startup.
func AllEventTypes() []EventType {
	return []EventType{Confirmed, Cancelled, Shipped, Delivered}
}

// String returns the wire/log name of the event type.
func (t EventType) String() string {
	if name, ok := eventTypeNames()[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate checks that the event type is one of the four canonical events.
func (t EventType) Validate() error {
	switch t {
	case Confirmed, Cancelled, Shipped, Delivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("eventType",
			fmt.Errorf("%d is not a canonical event type", t))
	}
}

// TargetStatus returns the order status this event drives the order towards.
// Only valid for the four canonical events.
func (t EventType) TargetStatus() order.Status {
	switch t {
	case Confirmed:
		return order.Confirmed
	case Cancelled:
		return order.Cancelled
	case Shipped:
		return order.Shipped
	case Delivered:
		return order.Delivered
	default:
		return order.Unknown
	}
}
