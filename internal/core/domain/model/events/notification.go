package events

// Notification is the tagged union of the external shapes that can drive a
// status change: provider webhooks and the explicit cancellation request.
// The marker method seals the union so MapEventType can match it
// exhaustively; a new notification kind cannot silently fall through without
// extending the mapper.
type Notification interface {
	// NotificationOrderID returns the order the notification refers to.
	NotificationOrderID() string

	isNotification()
}

// Payment status values accepted on the payment webhook.
const (
	PaymentStatusApproved = "approved"
	PaymentStatusDeclined = "declined"
	PaymentStatusFailed   = "failed"
)

// Shipment status values accepted on the shipment webhook.
const (
	ShipmentStatusShipped   = "shipped"
	ShipmentStatusDelivered = "delivered"
)

// PaymentNotification is the payment provider's webhook payload.
// Provider and TransactionID are provenance only; the state machine never
// reads them.
type PaymentNotification struct {
	OrderID       string
	Amount        float64
	Provider      string
	TransactionID string
	Status        string
}

func (n PaymentNotification) NotificationOrderID() string { return n.OrderID }
func (n PaymentNotification) isNotification()             {}

// ShipmentNotification is the shipping carrier's webhook payload.
// Carrier and TrackingCode are provenance only.
type ShipmentNotification struct {
	OrderID      string
	Carrier      string
	TrackingCode string
	Status       string
}

func (n ShipmentNotification) NotificationOrderID() string { return n.OrderID }
func (n ShipmentNotification) isNotification()             {}

// CancellationRequest is an explicit cancellation coming through the order
// API rather than a provider webhook.
type CancellationRequest struct {
	OrderID string
}

func (n CancellationRequest) NotificationOrderID() string { return n.OrderID }
func (n CancellationRequest) isNotification()             {}
