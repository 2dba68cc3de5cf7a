package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// PaymentGateway is the port to the external payment provider. Charges are
// initiated after the order is committed; the outcome arrives asynchronously
// and is applied by a separate command.
type PaymentGateway interface {
	// Charge attempts to collect the amount for the order. A nil error
	// means the charge succeeded; a non-nil error means it failed and the
	// order's payment moves to failed.
	Charge(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error
}
