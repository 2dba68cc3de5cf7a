// Package backlog provides the Entry value object: a pending order waiting in
// a restaurant's FIFO queue because no staff member was available when it was
// submitted. Entries are drained oldest-first when a staff member frees up.
package backlog

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one queued order. The enqueue time defines the FIFO order within a
// restaurant's backlog.
type Entry struct {
	orderID      kernel.UUID
	restaurantID kernel.UUID
	enqueuedAt   time.Time

	guard guard.ConstructorGuard
}

// NewEntry queues an order, stamping the enqueue time now.
func NewEntry(orderID kernel.UUID, restaurantID kernel.UUID) (*Entry, error) {
	return RestoreEntry(orderID, restaurantID, time.Now().UTC())
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(orderID kernel.UUID, restaurantID kernel.UUID, enqueuedAt time.Time) (*Entry, error) {
	if err := errors.Join(
		orderID.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Entry{
		orderID:      orderID,
		restaurantID: restaurantID,
		enqueuedAt:   enqueuedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// OrderID returns the queued order's identifier.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// RestaurantID returns the restaurant whose queue holds the entry.
func (e *Entry) RestaurantID() kernel.UUID {
	return e.restaurantID
}

// EnqueuedAt returns the time the order joined the queue.
func (e *Entry) EnqueuedAt() time.Time {
	return e.enqueuedAt
}
