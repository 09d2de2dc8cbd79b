package events

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSource is returned when a notification does not belong to the
// sealed union handled by MapEventType.
var ErrUnknownSource = errors.New("unknown notification source")

// ErrUnknownStatus is the base error for provider status values that have no
// canonical event.
var ErrUnknownStatus = errors.New("unknown notification status")

// UnknownStatusError reports a provider status value that could not be
// normalized into a canonical event.
type UnknownStatusError struct {
	Source string
	Status string
}

func NewUnknownStatusError(source string, status string) *UnknownStatusError {
	return &UnknownStatusError{Source: source, Status: status}
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown %s status: %s", e.Source, e.Status)
}

func (e *UnknownStatusError) Unwrap() error {
	return ErrUnknownStatus
}

// MapEventType normalizes a provider notification into the canonical event
// vocabulary. It is pure: no I/O, no side effects, and a defined outcome for
// every input.
func MapEventType(n Notification) (EventType, error) {
	switch v := n.(type) {
	case PaymentNotification:
		return mapPaymentStatus(v.Status)
	case ShipmentNotification:
		return mapShipmentStatus(v.Status)
	case CancellationRequest:
		return Cancelled, nil
	default:
		return UnknownEvent, fmt.Errorf("%w: %T", ErrUnknownSource, n)
	}
}

func mapPaymentStatus(status string) (EventType, error) {
	switch strings.ToLower(status) {
	case PaymentStatusApproved:
		return Confirmed, nil
	case PaymentStatusDeclined, PaymentStatusFailed:
		return Cancelled, nil
	default:
		return UnknownEvent, NewUnknownStatusError("payment", status)
	}
}

func mapShipmentStatus(status string) (EventType, error) {
	switch strings.ToLower(status) {
	case ShipmentStatusShipped:
		return Shipped, nil
	case ShipmentStatusDelivered:
		return Delivered, nil
	default:
		return UnknownEvent, NewUnknownStatusError("shipment", status)
	}
}
