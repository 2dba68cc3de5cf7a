package commands_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/notifications"
)

func newTransitionHandler(factory commands.UoWFactory, dispatcher commands.BacklogDispatcher) commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		factory,
		dispatcher,
		notifications.NewMemoryBroker(slog.Default()),
		slog.Default(),
	)
}

func assignedOrder(t *testing.T, restaurantID kernel.UUID, staffID kernel.UUID) *order.Order {
	t.Helper()
	o := pendingOrder(t, restaurantID)
	require.NoError(t, o.Assign(staffID))
	return o
}

func TestTransitionOrderCommandHandler_Handle_StaffAdvancesOrder(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	staffID := kernel.NewUUID()
	testOrder := assignedOrder(t, restaurantID, staffID)

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Preparing, &staffID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newTransitionHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, testOrder.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_CompletionReleasesStaffAndDispatchesBacklog(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	member := availableStaff(t, restaurantID, 7.0)
	staffID := member.ID()
	require.NoError(t, member.TakeOrder())

	testOrder := assignedOrder(t, restaurantID, staffID)
	require.NoError(t, testOrder.TransitionTo(order.Preparing, &staffID))
	require.NoError(t, testOrder.TransitionTo(order.Ready, &staffID))
	require.NoError(t, testOrder.TransitionTo(order.Served, &staffID))

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Completed, &staffID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	staffRepo := new(MockStaffRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StaffRepository").Return(staffRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	staffRepo.On("Get", ctx, staffID).Return(member, nil).Once()
	staffRepo.On("Update", ctx, mock.AnythingOfType("*staff.StaffMember")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockBacklogDispatcher)
	dispatcher.On("DispatchTo", ctx, restaurantID, staffID).Return(nil).Once()

	handler := newTransitionHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, testOrder.Status())
	assert.True(t, member.IsAvailable())
	assert.Equal(t, 1, member.TotalOrdersCompleted())
	dispatcher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_CancellationDoesNotAdvanceCompletionCounter(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	member := availableStaff(t, restaurantID, 7.0)
	staffID := member.ID()
	require.NoError(t, member.TakeOrder())

	testOrder := assignedOrder(t, restaurantID, staffID)

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Cancelled, &staffID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	staffRepo := new(MockStaffRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StaffRepository").Return(staffRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	staffRepo.On("Get", ctx, staffID).Return(member, nil).Once()
	staffRepo.On("Update", ctx, mock.AnythingOfType("*staff.StaffMember")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockBacklogDispatcher)
	dispatcher.On("DispatchTo", ctx, restaurantID, staffID).Return(nil).Once()

	handler := newTransitionHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, testOrder.Status())
	assert.True(t, member.IsAvailable())
	assert.Equal(t, 0, member.TotalOrdersCompleted())
}

func TestTransitionOrderCommandHandler_Handle_OwnerCancelRemovesPendingOrderFromBacklog(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	testOrder := pendingOrder(t, restaurantID)

	cmd, err := commands.NewCancelOrderByOwnerCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	backlogRepo := new(MockBacklogRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("BacklogRepository").Return(backlogRepo)
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	backlogRepo.On("Remove", ctx, testOrder.ID()).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newTransitionHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, testOrder.Status())
	backlogRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_RejectsUnassignedActor(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	testOrder := assignedOrder(t, restaurantID, kernel.NewUUID())
	impostor := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Preparing, &impostor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newTransitionHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrUnauthorized)
	assert.Equal(t, order.Assigned, testOrder.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestTransitionOrderCommandHandler_Handle_RejectsIllegalTransition(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	staffID := kernel.NewUUID()
	testOrder := assignedOrder(t, restaurantID, staffID)

	// Skipping preparing is illegal.
	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Ready, &staffID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newTransitionHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	uow.AssertNotCalled(t, "Commit", ctx)
}
