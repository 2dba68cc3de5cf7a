package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/backlog"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) Add(ctx context.Context, s *staff.StaffMember) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStaffRepository) Update(ctx context.Context, s *staff.StaffMember) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*staff.StaffMember, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) ClaimAvailable(ctx context.Context, id kernel.UUID) (*staff.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.StaffMember), args.Error(1)
}

type MockBacklogRepository struct{ mock.Mock }

func (m *MockBacklogRepository) Add(ctx context.Context, e *backlog.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockBacklogRepository) PopOldest(ctx context.Context, restaurantID kernel.UUID) (*backlog.Entry, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backlog.Entry), args.Error(1)
}

func (m *MockBacklogRepository) Remove(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockBacklogRepository) GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*backlog.Entry, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*backlog.Entry), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StaffRepository() ports.StaffRepository {
	args := m.Called()
	return args.Get(0).(ports.StaffRepository)
}

func (m *MockUoW) BacklogRepository() ports.BacklogRepository {
	args := m.Called()
	return args.Get(0).(ports.BacklogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStaffUoWFactory struct{ mock.Mock }

func (m *MockStaffUoWFactory) Create() commands.StaffUoW {
	args := m.Called()
	return args.Get(0).(commands.StaffUoW)
}

type MockOrderNumberSequence struct{ mock.Mock }

func (m *MockOrderNumberSequence) Next(ctx context.Context, restaurantID kernel.UUID, day time.Time) (int, error) {
	args := m.Called(ctx, restaurantID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderNumberSequence) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockCatalogGateway struct{ mock.Mock }

func (m *MockCatalogGateway) GetPrice(ctx context.Context, menuItemID kernel.UUID) (*catalog.MenuItemPrice, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MenuItemPrice), args.Error(1)
}

type MockBacklogDispatcher struct{ mock.Mock }

func (m *MockBacklogDispatcher) DispatchTo(ctx context.Context, restaurantID kernel.UUID, staffID kernel.UUID) error {
	args := m.Called(ctx, restaurantID, staffID)
	return args.Error(0)
}

type MockPaymentInitiator struct{ mock.Mock }

func (m *MockPaymentInitiator) InitiatePayment(orderID kernel.UUID, amount kernel.Money) {
	m.Called(orderID, amount)
}

// Test data helpers.

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func pendingOrder(t *testing.T, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, money(t, 10000), "")
	require.NoError(t, err)

	sessionID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-20260829-001", restaurantID, kernel.NewUUID(), &sessionID,
		[]*order.Item{item}, order.PaymentCash, kernel.ZeroMoney(), 0.18,
	)
	require.NoError(t, err)
	return o
}

func availableStaff(t *testing.T, restaurantID kernel.UUID, rating float64) *staff.StaffMember {
	t.Helper()
	member, err := staff.NewStaffMember(kernel.NewUUID(), restaurantID, "staff", rating, money(t, 2500))
	require.NoError(t, err)
	return member
}
