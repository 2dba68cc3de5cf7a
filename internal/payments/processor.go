// Package payments runs asynchronous gateway charges for online orders.
// Submission never waits on the gateway: a charge is started after the order
// commits and its outcome is applied later by a separate command.
package payments

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// Outcome is the result of one charge attempt. Err is nil on success.
type Outcome struct {
	OrderID kernel.UUID
	Err     error
}

// Task is one in-flight charge. Done yields exactly one outcome and is then
// closed.
type Task struct {
	outcome chan Outcome
}

// Done returns the channel the outcome arrives on.
func (t *Task) Done() <-chan Outcome {
	return t.outcome
}

// Processor runs charges against the payment gateway in the background.
type Processor struct {
	gateway ports.PaymentGateway
	timeout time.Duration
	logger  *slog.Logger
}

// NewProcessor creates a processor that bounds each charge by timeout.
func NewProcessor(gateway ports.PaymentGateway, timeout time.Duration, logger *slog.Logger) *Processor {
	return &Processor{
		gateway: gateway,
		timeout: timeout,
		logger:  logger.With("component", "payments"),
	}
}

// Start launches a charge and returns immediately. The returned task
// resolves when the gateway answers or the timeout expires. The charge runs
// on its own context: the submission request that started it may finish
// first.
func (p *Processor) Start(orderID kernel.UUID, amount kernel.Money) *Task {
	task := &Task{outcome: make(chan Outcome, 1)}

	go func() {
		defer close(task.outcome)

		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		err := p.gateway.Charge(ctx, orderID, amount)
		if err != nil {
			p.logger.Warn("charge failed",
				"order_id", orderID.String(), "amount", amount.String(), "error", err)
		} else {
			p.logger.Info("charge succeeded",
				"order_id", orderID.String(), "amount", amount.String())
		}

		task.outcome <- Outcome{OrderID: orderID, Err: err}
	}()

	return task
}
