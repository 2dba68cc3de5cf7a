package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status change does not
// follow the lifecycle. The order is left unchanged.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order. It implements a state
// machine with a single forward chain and cancellation from every
// non-terminal state:
//
//	Pending ──> Assigned ──> Preparing ──> Ready ──> Served ──> Completed
//	   │            │            │           │          │
//	   └────────────┴────────────┴───────────┴──────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Status is a value object that
// validates transitions and provides string representations for persistence
// and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is persisted and waiting
	// for a staff member to be assigned.
	Pending

	// Assigned indicates the assignment engine matched the order with a
	// staff member. This transition is engine-driven, never actor-driven.
	Assigned

	// Preparing indicates the assigned staff member started preparation.
	Preparing

	// Ready indicates the order is prepared and waiting to be served.
	Ready

	// Served indicates the order reached the table.
	Served

	// Completed is the terminal success state. Entering it releases the
	// assigned staff member.
	Completed

	// Cancelled is the terminal failure state, reachable from every
	// non-terminal status. Orders are never deleted; they are cancelled.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Assigned:  "assigned",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the persistence/API representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the lowercase name used in persistence and events.
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// next returns the forward successor in the lifecycle chain, or Unknown when
// there is none.
func (s Status) next() Status {
	//nolint:exhaustive // terminal and invalid states have no successor
	switch s {
	case Pending:
		return Assigned
	case Assigned:
		return Preparing
	case Preparing:
		return Ready
	case Ready:
		return Served
	case Served:
		return Completed
	default:
		return Unknown
	}
}

// CanTransitionTo reports whether moving to target is legal from s: one step
// forward along the chain, or to Cancelled from any non-terminal state.
// Backward moves and skipped states are never legal.
func (s Status) CanTransitionTo(target Status) bool {
	if target.Validate() != nil {
		return false
	}
	if target == Cancelled {
		return !s.IsTerminal() && s != Unknown
	}
	return s.next() == target
}

// TransitionTo returns the new status after a legal transition, or
// ErrInvalidTransition (with the attempted move in the message) otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
