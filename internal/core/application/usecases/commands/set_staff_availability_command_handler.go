package commands

import (
	"context"
	"log/slog"
)

// SetStaffAvailabilityCommandHandler handles availability toggles. A member
// becoming available triggers a backlog dispatch: if orders queued up while
// they were away, the oldest one is handed to them immediately.
type SetStaffAvailabilityCommandHandler struct {
	uowFactory StaffUoWFactory
	dispatcher BacklogDispatcher
	logger     *slog.Logger
}

// NewSetStaffAvailabilityCommandHandler creates a handler for availability
// toggles. dispatcher may be nil when no backlog redispatch is wanted.
func NewSetStaffAvailabilityCommandHandler(
	uowFactory StaffUoWFactory,
	dispatcher BacklogDispatcher,
	logger *slog.Logger,
) SetStaffAvailabilityCommandHandler {
	return SetStaffAvailabilityCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "set_staff_availability"),
	}
}

// Handle processes the toggle. The redispatch runs after commit; its failure
// is logged, not returned.
func (h *SetStaffAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetStaffAvailabilityCommand) error {
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

	member, err := uow.StaffRepository().Get(ctx, cmd.StaffID())
	if err != nil {
		return err
	}

	member.SetAvailability(cmd.Available())

	if err = uow.StaffRepository().Update(ctx, member); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("staff availability changed",
		"staff_id", member.ID().String(), "available", cmd.Available())

	if cmd.Available() && h.dispatcher != nil {
		if err = h.dispatcher.DispatchTo(ctx, member.RestaurantID(), member.ID()); err != nil {
			h.logger.Error("backlog dispatch after availability change failed",
				"staff_id", member.ID().String(), "error", err)
		}
	}

	return nil
}
