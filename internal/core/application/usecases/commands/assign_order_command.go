package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to match a pending order with the
// best available staff member, or to queue it when nobody is free.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign the given pending order.
func NewAssignOrderCommand(orderID kernel.UUID, restaurantID kernel.UUID) (AssignOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:      orderID,
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the restaurant whose staff pool is considered.
func (c AssignOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}
