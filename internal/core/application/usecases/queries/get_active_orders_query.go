// Package queries contains read-only operations that bypass the aggregate
// layer. Implements the Query side of the CQRS architecture: raw SQL against
// the read model, projected straight into response structs.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves a restaurant's orders that have not reached
// a terminal state, for staff and dashboard views.
type GetActiveOrdersQuery struct {
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the restaurant's active
// orders.
func NewGetActiveOrdersQuery(restaurantID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose orders are listed.
func (q GetActiveOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// GetActiveOrdersQueryResponse is one active order row.
type GetActiveOrdersQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	TableID         kernel.UUID
	Status          string
	AssignedStaffID *kernel.UUID
	TotalAmount     int64
	CreatedAt       time.Time
}
