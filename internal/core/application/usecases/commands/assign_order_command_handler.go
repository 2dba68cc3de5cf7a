package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/backlog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/notifications"
	"fulfillment/internal/pkg/keymutex"
)

// AssignmentResult reports how an assignment attempt ended: either with a
// staff member or with the order queued in the backlog.
type AssignmentResult struct {
	Assigned bool
	StaffID  *kernel.UUID
}

// AssignOrderCommandHandler handles the business logic for staff assignment.
// Ranks the restaurant's available staff with the scoring policy, claims the
// best candidate, and falls through ranked candidates when a claim is lost to
// a concurrent assignment. When nobody can be claimed the order is queued in
// the restaurant's FIFO backlog.
//
// Assignments of one restaurant are serialized with a per-restaurant mutex,
// so two concurrent submissions cannot pick the same candidate from the same
// snapshot; the conditional claim in the repository backstops other nodes.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	scorer     services.StaffScorer
	locks      *keymutex.KeyMutex
	publisher  notifications.Publisher
	logger     *slog.Logger
}

// NewAssignOrderCommandHandler creates a handler for assignment operations.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	scorer services.StaffScorer,
	locks *keymutex.KeyMutex,
	publisher notifications.Publisher,
	logger *slog.Logger,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		scorer:     scorer,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "assign_order"),
	}
}

// Handle processes the assignment command. The order must be in pending
// status; orders that moved on (e.g. cancelled while the command was queued)
// are skipped without error.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	h.locks.Lock(cmd.RestaurantID().String())
	defer h.locks.Unlock(cmd.RestaurantID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AssignmentResult{}, err
	}

	if target.Status() != order.Pending {
		h.logger.Info("order no longer pending, skipping assignment",
			"order_id", target.ID().String(), "status", target.Status().String())
		return AssignmentResult{}, nil
	}

	claimed, err := h.claimBestCandidate(ctx, uow, cmd.RestaurantID())
	if err != nil {
		if errors.Is(err, services.ErrNoStaffAvailable) {
			return h.enqueue(ctx, uow, target)
		}
		return AssignmentResult{}, err
	}

	if err = target.Assign(claimed.ID()); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	h.logger.Info("order assigned",
		"order_id", target.ID().String(),
		"order_number", target.OrderNumber(),
		"staff_id", claimed.ID().String())

	h.notifyAssigned(ctx, target, claimed.ID())

	staffID := claimed.ID()
	return AssignmentResult{Assigned: true, StaffID: &staffID}, nil
}

// claimBestCandidate walks the ranked candidates and claims the first one
// whose conditional claim succeeds. A lost claim means another node took
// that candidate between ranking and claiming; the next candidate is tried.
// Returns services.ErrNoStaffAvailable when every candidate is gone.
func (h *AssignOrderCommandHandler) claimBestCandidate(
	ctx context.Context,
	uow UoW,
	restaurantID kernel.UUID,
) (*staff.StaffMember, error) {
	pool, err := uow.StaffRepository().GetAllByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	ranked, err := h.scorer.Rank(pool)
	if err != nil {
		return nil, err
	}

	for _, candidate := range ranked {
		claimed, err := uow.StaffRepository().ClaimAvailable(ctx, candidate.ID())
		if errors.Is(err, staff.ErrStaffNotAvailable) {
			h.logger.Info("lost claim, trying next candidate",
				"staff_id", candidate.ID().String())
			continue
		}
		if err != nil {
			return nil, err
		}
		return claimed, nil
	}

	return nil, services.ErrNoStaffAvailable
}

// enqueue queues the order in the restaurant's backlog and alerts the
// restaurant dashboard.
func (h *AssignOrderCommandHandler) enqueue(
	ctx context.Context,
	uow UoW,
	target *order.Order,
) (AssignmentResult, error) {
	entry, err := backlog.NewEntry(target.ID(), target.RestaurantID())
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.BacklogRepository().Add(ctx, entry); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	h.logger.Info("no staff available, order queued",
		"order_id", target.ID().String(), "order_number", target.OrderNumber())

	publishEvent(ctx, h.publisher, h.logger,
		notifications.RestaurantChannel(target.RestaurantID()),
		notifications.NewEvent(notifications.EventOrderUnassigned, map[string]any{
			"order_id":     target.ID().String(),
			"order_number": target.OrderNumber(),
		}))

	return AssignmentResult{Assigned: false}, nil
}

func (h *AssignOrderCommandHandler) notifyAssigned(ctx context.Context, target *order.Order, staffID kernel.UUID) {
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
		notifications.NewEvent(notifications.EventOrderAssigned, data))

	publishEvent(ctx, h.publisher, h.logger,
		notifications.StaffChannel(staffID),
		notifications.NewEvent(notifications.EventNewOrder, map[string]any{
			"order_id":     target.ID().String(),
			"order_number": target.OrderNumber(),
			"table_id":     target.TableID().String(),
		}))
}
