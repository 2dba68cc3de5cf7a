package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchBacklogCommandIsNotConstructed = errors.New(
	"DispatchBacklogCommand must be created via NewDispatchBacklogCommand constructor",
)

// DispatchBacklogCommand represents a request to hand the oldest queued
// order of a restaurant to a staff member who just became available.
type DispatchBacklogCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	staffID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchBacklogCommand creates a command to drain the restaurant's
// backlog onto the given staff member.
func NewDispatchBacklogCommand(restaurantID kernel.UUID, staffID kernel.UUID) (DispatchBacklogCommand, error) {
	if err := errors.Join(
		restaurantID.Validate(),
		staffID.Validate(),
	); err != nil {
		return DispatchBacklogCommand{}, err
	}

	return DispatchBacklogCommand{
		restaurantID: restaurantID,
		staffID:      staffID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchBacklogCommand) Validate() error {
	return c.guard.Validate(ErrDispatchBacklogCommandIsNotConstructed)
}

// RestaurantID returns the restaurant whose backlog is drained.
func (c DispatchBacklogCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// StaffID returns the staff member who became available.
func (c DispatchBacklogCommand) StaffID() kernel.UUID {
	return c.staffID
}
