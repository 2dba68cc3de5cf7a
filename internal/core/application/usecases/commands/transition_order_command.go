package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order along its
// lifecycle. The actor is either the assigned staff member (actorStaffID
// set) or an owner-level caller (byOwner set), whose only permitted move is
// cancellation from any non-terminal state.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	target       order.Status
	actorStaffID *kernel.UUID
	byOwner      bool

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command for a staff-driven transition.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actorStaffID *kernel.UUID,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	if actorStaffID != nil {
		if err := actorStaffID.Validate(); err != nil {
			return TransitionOrderCommand{}, err
		}
	}

	cmd.orderID = orderID
	cmd.target = target
	cmd.actorStaffID = actorStaffID
	return cmd, nil
}

// NewCancelOrderByOwnerCommand creates an owner-level cancellation command.
func NewCancelOrderByOwnerCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		target:  order.Cancelled,
		byOwner: true,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// ActorStaffID returns the requesting staff member, or nil for system- or
// owner-driven transitions.
func (c TransitionOrderCommand) ActorStaffID() *kernel.UUID {
	return c.actorStaffID
}

// ByOwner reports whether this is an owner-level cancellation.
func (c TransitionOrderCommand) ByOwner() bool {
	return c.byOwner
}
