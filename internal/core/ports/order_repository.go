package ports

import (
	"context"
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by Update when the order's stored
// status no longer matches the status it was read with, meaning another
// writer won the race. Callers re-read the order and retry the transition.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and owning customer.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// expectedStatus is the status the order carried when it was read;
	// the write only applies if the stored row still carries it.
	// Returns ErrConcurrentModification if another writer got there first.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetAll retrieves every stored order.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetByStatus retrieves all orders currently in the given status.
	GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetByCustomer retrieves all orders placed by the given customer.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetPendingOlderThan retrieves pending orders placed before the cutoff.
	// Used by the stale-order job to find orders eligible for auto-cancellation.
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// Remove deletes an order aggregate and its items from storage.
	Remove(ctx context.Context, id order.ID) error
}
