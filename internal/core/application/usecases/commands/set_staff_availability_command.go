package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetStaffAvailabilityCommandIsNotConstructed = errors.New(
	"SetStaffAvailabilityCommand must be created via NewSetStaffAvailabilityCommand constructor",
)

// SetStaffAvailabilityCommand represents a staff- or system-driven
// availability toggle.
type SetStaffAvailabilityCommand struct { //nolint:recvcheck //using for validation
	staffID   kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetStaffAvailabilityCommand creates a command to toggle availability.
func NewSetStaffAvailabilityCommand(staffID kernel.UUID, available bool) (SetStaffAvailabilityCommand, error) {
	if err := staffID.Validate(); err != nil {
		return SetStaffAvailabilityCommand{}, err
	}

	return SetStaffAvailabilityCommand{
		staffID:   staffID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStaffAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetStaffAvailabilityCommandIsNotConstructed)
}

// StaffID returns the staff member whose availability changes.
func (c SetStaffAvailabilityCommand) StaffID() kernel.UUID {
	return c.staffID
}

// Available returns the requested availability state.
func (c SetStaffAvailabilityCommand) Available() bool {
	return c.available
}
