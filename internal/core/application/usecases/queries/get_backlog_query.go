package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBacklogQueryIsNotConstructed = errors.New(
	"GetBacklogQuery must be created via NewGetBacklogQuery constructor",
)

// GetBacklogQuery retrieves a restaurant's queued, still-unassigned orders
// in dispatch order.
type GetBacklogQuery struct {
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBacklogQuery creates a query for the restaurant's backlog.
func NewGetBacklogQuery(restaurantID kernel.UUID) (GetBacklogQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetBacklogQuery{}, err
	}

	return GetBacklogQuery{
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBacklogQuery) Validate() error {
	return q.guard.Validate(ErrGetBacklogQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose backlog is listed.
func (q GetBacklogQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// GetBacklogQueryResponse is one queued order, in dispatch (FIFO) position.
type GetBacklogQueryResponse struct {
	OrderID     kernel.UUID
	OrderNumber string
	EnqueuedAt  time.Time
}
