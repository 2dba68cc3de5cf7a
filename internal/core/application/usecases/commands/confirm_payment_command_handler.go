package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/notifications"
)

// ConfirmPaymentCommandHandler applies the outcome of an asynchronous
// gateway charge to the order's settlement state and notifies the customer
// session. A successful charge on a tipped order also tells the assigned
// staff member about their tip.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  notifications.Publisher
	logger     *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for charge outcomes.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher notifications.Publisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "confirm_payment"),
	}
}

// Handle processes the charge outcome.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Succeeded() {
		err = target.CompletePayment()
	} else {
		err = target.FailPayment()
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("payment outcome applied",
		"order_id", target.ID().String(),
		"payment_status", target.PaymentStatus().String())

	h.notifyOutcome(ctx, target)
	return nil
}

func (h *ConfirmPaymentCommandHandler) notifyOutcome(ctx context.Context, target *order.Order) {
	eventType := notifications.EventPaymentFailed
	if target.PaymentStatus() == order.PaymentCompleted {
		eventType = notifications.EventPaymentConfirmed
	}

	if sessionID := target.SessionID(); sessionID != nil {
		publishEvent(ctx, h.publisher, h.logger,
			notifications.SessionChannel(*sessionID),
			notifications.NewEvent(eventType, map[string]any{
				"order_id":     target.ID().String(),
				"order_number": target.OrderNumber(),
				"total_amount": target.TotalAmount().Amount(),
			}))
	}

	if eventType == notifications.EventPaymentConfirmed &&
		target.TipAmount().IsPositive() && target.AssignedStaff() != nil {
		publishEvent(ctx, h.publisher, h.logger,
			notifications.StaffChannel(*target.AssignedStaff()),
			notifications.NewEvent(notifications.EventTipReceived, map[string]any{
				"order_id":     target.ID().String(),
				"order_number": target.OrderNumber(),
				"tip_amount":   target.TipAmount().Amount(),
			}))
	}
}
