package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents the outcome of an asynchronous gateway
// charge arriving back at the core.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	succeeded bool

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to apply a charge outcome.
func NewConfirmPaymentCommand(orderID kernel.UUID, succeeded bool) (ConfirmPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderID:   orderID,
		succeeded: succeeded,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the order the charge was for.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Succeeded reports whether the gateway collected the amount.
func (c ConfirmPaymentCommand) Succeeded() bool {
	return c.succeeded
}
