// Package payment provides the outbound payment gateway adapter. The real
// provider integration lives outside this service; this adapter models its
// contract (a charge that takes time and can be cancelled) so the async
// payment flow is exercised end to end.
package payment

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// SimulatedGateway approves every charge after a fixed latency. It honors
// context cancellation, so the processor's timeout translates into a failed
// payment the same way a slow provider would.
type SimulatedGateway struct {
	latency time.Duration
	logger  *slog.Logger
}

// NewSimulatedGateway creates a gateway that answers after latency.
func NewSimulatedGateway(latency time.Duration, logger *slog.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		latency: latency,
		logger:  logger.With("component", "payment_gateway"),
	}
}

// Charge simulates one provider round trip.
func (g *SimulatedGateway) Charge(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error {
	timer := time.NewTimer(g.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		g.logger.Info("charge approved",
			"order_id", orderID.String(), "amount", amount.String())
		return nil
	}
}
