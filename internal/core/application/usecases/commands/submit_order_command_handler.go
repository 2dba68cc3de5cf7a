package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/notifications"
)

// SubmitOrderCommandHandler handles the business logic for order submission.
// Prices the cart from the catalog, allocates the daily order number, and
// persists the order in "pending" status. For online orders it starts the
// asynchronous gateway charge after commit.
//
// Assignment is a separate command: callers run AssignOrderCommand once the
// submission has committed, so a failed assignment never loses an accepted
// order.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	sequence   ports.OrderNumberSequence
	catalog    ports.CatalogGateway
	initiator  PaymentInitiator
	publisher  notifications.Publisher
	taxRate    float64
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	sequence ports.OrderNumberSequence,
	catalog ports.CatalogGateway,
	initiator PaymentInitiator,
	publisher notifications.Publisher,
	taxRate float64,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		catalog:    catalog,
		initiator:  initiator,
		publisher:  publisher,
		taxRate:    taxRate,
		logger:     logger.With("component", "submit_order"),
	}
}

// Handle processes the submission. The catalog lookups and the number
// allocation run before the transaction; the order and its items are
// persisted atomically inside it. Returns the created order so callers can
// render it and trigger assignment.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := h.priceCart(ctx, cmd.Lines())
	if err != nil {
		return nil, err
	}

	orderNumber, err := h.nextOrderNumber(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		orderNumber,
		cmd.RestaurantID(),
		cmd.TableID(),
		cmd.SessionID(),
		items,
		cmd.PaymentMethod(),
		cmd.TipAmount(),
		h.taxRate,
	)
	if err != nil {
		return nil, err
	}

	if cmd.PaymentMethod() == order.PaymentOnline {
		if err = newOrder.BeginPaymentProcessing(); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("order submitted",
		"order_id", newOrder.ID().String(),
		"order_number", newOrder.OrderNumber(),
		"total", newOrder.TotalAmount().String())

	if sessionID := newOrder.SessionID(); sessionID != nil {
		publishEvent(ctx, h.publisher, h.logger,
			notifications.SessionChannel(*sessionID),
			notifications.NewEvent(notifications.EventOrderConfirmed, map[string]any{
				"order_id":     newOrder.ID().String(),
				"order_number": newOrder.OrderNumber(),
				"total_amount": newOrder.TotalAmount().Amount(),
			}))
	}

	if cmd.PaymentMethod() == order.PaymentOnline && h.initiator != nil {
		h.initiator.InitiatePayment(newOrder.ID(), newOrder.TotalAmount())
	}

	return newOrder, nil
}

// priceCart snapshots catalog prices into order items.
func (h *SubmitOrderCommandHandler) priceCart(ctx context.Context, lines []CartLine) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(lines))
	for _, line := range lines {
		price, err := h.catalog.GetPrice(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(
			kernel.NewUUID(),
			line.MenuItemID,
			line.Quantity,
			price.UnitPrice(),
			line.Instructions,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// nextOrderNumber allocates the restaurant's next per-day counter and
// formats it, e.g. "ORD-20260829-007".
func (h *SubmitOrderCommandHandler) nextOrderNumber(ctx context.Context, restaurantID kernel.UUID) (string, error) {
	day := time.Now().UTC()
	n, err := h.sequence.Next(ctx, restaurantID, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", day.Format("20060102"), n), nil
}
