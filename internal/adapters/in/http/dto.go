package http

import (
	"time"

	"ordertrack/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderRequest is the upsert payload accepted on POST /orders.
// OrderID is optional; a missing id means a new order and one is generated.
// Status is the status the client believes the order is in.
type OrderRequest struct {
	OrderID    string        `json:"orderId,omitempty"`
	CustomerID string        `json:"customerId"`
	OrderDate  time.Time     `json:"orderDate"`
	Status     string        `json:"status,omitempty"`
	Items      []ItemRequest `json:"items"`
}

// ItemRequest is one order line in the upsert payload.
type ItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// UpsertOrderResponse acknowledges an accepted upsert.
type UpsertOrderResponse struct {
	OrderID string `json:"orderId"`
}

// PaymentWebhookRequest is the payment provider's webhook payload.
type PaymentWebhookRequest struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	Provider      string  `json:"provider"`
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
}

// ShipmentWebhookRequest is the shipping carrier's webhook payload.
type ShipmentWebhookRequest struct {
	OrderID      string `json:"orderId"`
	Carrier      string `json:"carrier"`
	TrackingCode string `json:"trackingCode"`
	Status       string `json:"status"`
}

// OrderResponse is the JSON shape of one order on the read endpoints.
type OrderResponse struct {
	OrderID     string         `json:"orderId"`
	CustomerID  string         `json:"customerId"`
	OrderDate   time.Time      `json:"orderDate"`
	Status      string         `json:"status"`
	TotalAmount float64        `json:"totalAmount"`
	Items       []ItemResponse `json:"items"`
}

// ItemResponse is one order line on the read endpoints.
type ItemResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

func toOrderResponse(source queries.OrderResponse) OrderResponse {
	items := make([]ItemResponse, len(source.Items))
	for i, item := range source.Items {
		items[i] = ItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return OrderResponse{
		OrderID:     source.OrderID,
		CustomerID:  source.CustomerID,
		OrderDate:   source.OrderDate,
		Status:      source.Status,
		TotalAmount: source.TotalAmount,
		Items:       items,
	}
}

func toOrderResponses(source []queries.OrderResponse) []OrderResponse {
	responses := make([]OrderResponse, len(source))
	for i, item := range source {
		responses[i] = toOrderResponse(item)
	}
	return responses
}
