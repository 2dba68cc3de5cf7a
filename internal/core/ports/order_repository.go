package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by status
// and restaurant.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items and the
	// initial status log row. The order must be valid and not already
	// exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and appends
	// the status log for any newly entered status.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its items, assignment, and payment
	// state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
