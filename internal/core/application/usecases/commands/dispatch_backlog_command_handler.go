package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/notifications"
	"fulfillment/internal/pkg/keymutex"
)

// DispatchBacklogCommandHandler hands the oldest queued order to a staff
// member who just freed up. The freed member takes the order directly,
// bypassing the scoring policy: the backlog drains FIFO, oldest order first,
// to whoever becomes available.
//
// Orders cancelled while queued are discarded on the way: their entries are
// consumed and the staff member stays available for the next one.
type DispatchBacklogCommandHandler struct {
	uowFactory UoWFactory
	locks      *keymutex.KeyMutex
	publisher  notifications.Publisher
	logger     *slog.Logger
}

// NewDispatchBacklogCommandHandler creates a handler for backlog dispatch.
func NewDispatchBacklogCommandHandler(
	uowFactory UoWFactory,
	locks *keymutex.KeyMutex,
	publisher notifications.Publisher,
	logger *slog.Logger,
) DispatchBacklogCommandHandler {
	return DispatchBacklogCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "dispatch_backlog"),
	}
}

// Handle processes the dispatch command. An empty backlog and a staff member
// already claimed by someone else are both normal outcomes, not errors.
func (h *DispatchBacklogCommandHandler) Handle(ctx context.Context, cmd DispatchBacklogCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.DispatchTo(ctx, cmd.RestaurantID(), cmd.StaffID())
}

// DispatchTo implements BacklogDispatcher for handlers that free a staff
// member mid-command (order completion, availability toggles).
func (h *DispatchBacklogCommandHandler) DispatchTo(ctx context.Context, restaurantID kernel.UUID, staffID kernel.UUID) error {
	h.locks.Lock(restaurantID.String())
	defer h.locks.Unlock(restaurantID.String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	claimed, err := uow.StaffRepository().ClaimAvailable(ctx, staffID)
	if errors.Is(err, staff.ErrStaffNotAvailable) {
		h.logger.Info("staff member no longer available for backlog",
			"staff_id", staffID.String())
		return nil
	}
	if err != nil {
		return err
	}

	target, err := h.popAssignableOrder(ctx, uow, restaurantID)
	if errors.Is(err, ports.ErrBacklogIsEmpty) {
		// Nothing to hand over: release the claim within the same
		// transaction so the member ends up available.
		claimed.SetAvailability(true)
		if err = uow.StaffRepository().Update(ctx, claimed); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}
	if err != nil {
		return err
	}

	if err = target.Assign(claimed.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("backlog order dispatched",
		"order_id", target.ID().String(),
		"order_number", target.OrderNumber(),
		"staff_id", claimed.ID().String())

	h.notifyDispatched(ctx, target, claimed.ID())
	return nil
}

// popAssignableOrder consumes backlog entries oldest-first until it finds an
// order still in pending status. Entries whose orders were cancelled while
// queued are dropped silently.
func (h *DispatchBacklogCommandHandler) popAssignableOrder(
	ctx context.Context,
	uow UoW,
	restaurantID kernel.UUID,
) (*order.Order, error) {
	for {
		entry, err := uow.BacklogRepository().PopOldest(ctx, restaurantID)
		if err != nil {
			return nil, err
		}

		target, err := uow.OrderRepository().Get(ctx, entry.OrderID())
		if err != nil {
			return nil, err
		}

		if target.Status() != order.Pending {
			h.logger.Info("dropping stale backlog entry",
				"order_id", target.ID().String(), "status", target.Status().String())
			continue
		}

		return target, nil
	}
}

func (h *DispatchBacklogCommandHandler) notifyDispatched(ctx context.Context, target *order.Order, staffID kernel.UUID) {
	data := map[string]any{
		"order_id":     target.ID().String(),
		"order_number": target.OrderNumber(),
		"staff_id":     staffID.String(),
	}

	if sessionID := target.SessionID(); sessionID != nil {
		publishEvent(ctx, h.publisher, h.logger,
			notifications.SessionChannel(*sessionID),
			notifications.NewEvent(notifications.EventOrderAssigned, data))
	}

	publishEvent(ctx, h.publisher, h.logger,
		notifications.StaffChannel(staffID),
		notifications.NewEvent(notifications.EventNewOrder, map[string]any{
			"order_id":     target.ID().String(),
			"order_number": target.OrderNumber(),
			"table_id":     target.TableID().String(),
		}))
}
