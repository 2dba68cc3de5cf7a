package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
)

// StaffRepository defines the persistence contract for staff member
// aggregates.
type StaffRepository interface {
	// Add persists a new staff member.
	Add(ctx context.Context, aggregate *staff.StaffMember) error

	// Update persists changes to an existing staff member.
	Update(ctx context.Context, aggregate *staff.StaffMember) error

	// Get retrieves a staff member by their unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*staff.StaffMember, error)

	// GetAllByRestaurant retrieves every staff member of the restaurant,
	// available or not. The assignment engine filters and ranks them.
	GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*staff.StaffMember, error)

	// ClaimAvailable atomically flips the staff member from available to
	// busy and returns the claimed aggregate. Returns
	// staff.ErrStaffNotAvailable when someone else claimed them first or
	// they toggled themselves unavailable; the caller then tries the next
	// candidate.
	ClaimAvailable(ctx context.Context, id kernel.UUID) (*staff.StaffMember, error)
}
