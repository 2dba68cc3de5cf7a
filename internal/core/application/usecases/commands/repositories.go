// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence, with best-effort notifications
// published after commit.
package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StaffRepoFactory provides access to the staff repository within a
	// transaction.
	StaffRepoFactory interface {
		StaffRepository() ports.StaffRepository
	}

	// BacklogRepoFactory provides access to the backlog repository within
	// a transaction.
	BacklogRepoFactory interface {
		BacklogRepository() ports.BacklogRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StaffUoW manages transactions for staff-only operations.
	StaffUoW interface {
		TxManager
		StaffRepoFactory
	}

	// StaffUoWFactory creates new staff unit of work instances.
	StaffUoWFactory interface {
		Create() StaffUoW
	}

	// UoW manages transactions across order, staff, and backlog
	// aggregates. Used by the assignment and transition workflows, which
	// must move an order and its staff member atomically.
	UoW interface {
		TxManager
		OrderRepoFactory
		StaffRepoFactory
		BacklogRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

// PaymentInitiator starts an asynchronous gateway charge for an online
// order. Implementations return immediately; the outcome is applied later by
// ConfirmPaymentCommandHandler.
type PaymentInitiator interface {
	InitiatePayment(orderID kernel.UUID, amount kernel.Money)
}

// BacklogDispatcher drains a restaurant's backlog onto a specific staff
// member who just became available. Implemented by
// DispatchBacklogCommandHandler; declared here so other handlers can trigger
// a redispatch without depending on the concrete handler.
type BacklogDispatcher interface {
	DispatchTo(ctx context.Context, restaurantID kernel.UUID, staffID kernel.UUID) error
}
