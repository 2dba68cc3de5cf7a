package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/notifications"
)

// TransitionOrderCommandHandler handles the business logic for lifecycle
// transitions. Applies the status change, keeps the backlog consistent when
// queued orders are cancelled, and releases the assigned staff member when
// the order reaches a terminal state, which in turn triggers a backlog
// dispatch for the freed member.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher BacklogDispatcher
	publisher  notifications.Publisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for transition
// operations. dispatcher may be nil when no backlog redispatch is wanted
// (tests, maintenance tooling).
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher BacklogDispatcher,
	publisher notifications.Publisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger.With("component", "transition_order"),
	}
}

// Handle processes the transition command. The status change, the backlog
// cleanup, and the staff release commit atomically; the redispatch of the
// freed staff member runs after commit and its failure is logged, not
// returned: the next availability change retries it.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	wasPending := target.Status() == order.Pending
	releasedStaffID := target.AssignedStaff()

	if cmd.ByOwner() {
		err = target.CancelByOwner()
	} else {
		err = target.TransitionTo(cmd.Target(), cmd.ActorStaffID())
	}
	if err != nil {
		return err
	}

	// A pending order may be sitting in the backlog; cancellation must
	// remove it so it is never dispatched.
	if cmd.Target() == order.Cancelled && wasPending {
		if err = uow.BacklogRepository().Remove(ctx, target.ID()); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	staffToRedispatch, err := h.releaseStaff(ctx, uow, target, releasedStaffID)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("order transitioned",
		"order_id", target.ID().String(),
		"order_number", target.OrderNumber(),
		"status", target.Status().String())

	h.notifyStatusUpdate(ctx, target)

	if staffToRedispatch != nil && h.dispatcher != nil {
		if err = h.dispatcher.DispatchTo(ctx, target.RestaurantID(), *staffToRedispatch); err != nil {
			h.logger.Error("backlog dispatch after release failed",
				"restaurant_id", target.RestaurantID().String(),
				"staff_id", staffToRedispatch.String(),
				"error", err)
		}
	}

	return nil
}

// releaseStaff frees the assigned staff member when the order just reached a
// terminal state. The completion counter only advances for completed orders.
// Returns the freed member's ID so the caller can redispatch after commit.
func (h *TransitionOrderCommandHandler) releaseStaff(
	ctx context.Context,
	uow UoW,
	target *order.Order,
	assignedStaffID *kernel.UUID,
) (*kernel.UUID, error) {
	if !target.Status().IsTerminal() || assignedStaffID == nil {
		return nil, nil
	}

	member, err := uow.StaffRepository().Get(ctx, *assignedStaffID)
	if err != nil {
		return nil, err
	}

	member.Release(target.Status() == order.Completed)

	if err = uow.StaffRepository().Update(ctx, member); err != nil {
		return nil, err
	}

	return assignedStaffID, nil
}

func (h *TransitionOrderCommandHandler) notifyStatusUpdate(ctx context.Context, target *order.Order) {
	event := notifications.NewEvent(notifications.EventOrderStatusUpdate, map[string]any{
		"order_id":     target.ID().String(),
		"order_number": target.OrderNumber(),
		"status":       target.Status().String(),
	})

	if sessionID := target.SessionID(); sessionID != nil {
		publishEvent(ctx, h.publisher, h.logger,
			notifications.SessionChannel(*sessionID), event)
	}

	publishEvent(ctx, h.publisher, h.logger,
		notifications.RestaurantChannel(target.RestaurantID()), event)
}
