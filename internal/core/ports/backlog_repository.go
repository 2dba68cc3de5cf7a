package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/backlog"
	"fulfillment/internal/core/domain/model/kernel"
)

// ErrBacklogIsEmpty is returned by PopOldest when the restaurant's queue has
// no entries left.
var ErrBacklogIsEmpty = errors.New("backlog is empty")

// BacklogRepository defines the persistence contract for the per-restaurant
// FIFO queues of unassigned orders.
type BacklogRepository interface {
	// Add queues an order at the tail of its restaurant's backlog.
	Add(ctx context.Context, entry *backlog.Entry) error

	// PopOldest removes and returns the oldest entry of the restaurant's
	// backlog, locking it against concurrent poppers for the duration of
	// the transaction. Returns ErrBacklogIsEmpty when the queue is empty.
	PopOldest(ctx context.Context, restaurantID kernel.UUID) (*backlog.Entry, error)

	// Remove deletes the entry for the given order if one exists, e.g.
	// when a queued order is cancelled before dispatch.
	Remove(ctx context.Context, orderID kernel.UUID) error

	// GetAllByRestaurant returns the restaurant's queue oldest-first
	// without consuming it.
	GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*backlog.Entry, error)
}
