// Package staff provides the StaffMember aggregate: the restaurant employees
// the assignment engine selects between. Availability, the completion
// counter, and tenure are the inputs of the scoring policy.
package staff

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// ratingMin and ratingMax bound the externally maintained performance
	// rating.
	ratingMin = 0.0
	ratingMax = 10.0
)

// Domain errors for staff operations.
var (
	// ErrStaffIsNotConstructed is returned when a StaffMember was not
	// created through NewStaffMember or RestoreStaffMember.
	ErrStaffIsNotConstructed = errors.New("StaffMember must be created via NewStaffMember constructor")
	// ErrNameIsRequired is returned when creating a staff member without
	// a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrStaffNotAvailable is returned when claiming a staff member who
	// is already busy or toggled unavailable. Callers recover by trying
	// the next candidate or queuing the order.
	ErrStaffNotAvailable = errors.New("staff member is not available")
)

// StaffMember is an aggregate scoped to exactly one restaurant. The
// assignment engine reads it to score candidates and flips its availability
// when claiming or releasing it; the completion counter grows monotonically.
type StaffMember struct {
	// id uniquely identifies the staff member
	id kernel.UUID
	// restaurantID scopes the staff member to one restaurant
	restaurantID kernel.UUID
	// name is the human-readable staff name
	name string
	// isAvailable is flipped by the staff member, the engine, or the system
	isAvailable bool
	// performanceRating is externally maintained, bounded to [0, 10]
	performanceRating float64
	// totalOrdersCompleted grows by one per completed order, never resets
	totalOrdersCompleted int
	// hourlyRate feeds the rate bonus of the scoring policy
	hourlyRate kernel.Money
	// createdAt is the tenure anchor used as the deterministic tie-break
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewStaffMember creates a staff member who starts available with zero
// completed orders. The creation time anchors the tie-break used by the
// scoring policy, so it is recorded once here and never changes.
func NewStaffMember(
	id kernel.UUID,
	restaurantID kernel.UUID,
	name string,
	performanceRating float64,
	hourlyRate kernel.Money,
) (*StaffMember, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, ErrNameIsRequired
	}

	if performanceRating < ratingMin || performanceRating > ratingMax {
		return nil, errs.NewValueIsOutOfRangeError("performance rating", performanceRating, ratingMin, ratingMax)
	}

	return &StaffMember{
		id:                id,
		restaurantID:      restaurantID,
		name:              name,
		isAvailable:       true,
		performanceRating: performanceRating,
		hourlyRate:        hourlyRate,
		createdAt:         time.Now().UTC(),
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// RestoreStaffMember reconstructs a staff member from persistence.
func RestoreStaffMember(
	id kernel.UUID,
	restaurantID kernel.UUID,
	name string,
	isAvailable bool,
	performanceRating float64,
	totalOrdersCompleted int,
	hourlyRate kernel.Money,
	createdAt time.Time,
) (*StaffMember, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, ErrNameIsRequired
	}

	if performanceRating < ratingMin || performanceRating > ratingMax {
		return nil, errs.NewValueIsOutOfRangeError("performance rating", performanceRating, ratingMin, ratingMax)
	}

	if totalOrdersCompleted < 0 {
		return nil, errs.NewValueIsInvalidError("total orders completed")
	}

	return &StaffMember{
		id:                   id,
		restaurantID:         restaurantID,
		name:                 name,
		isAvailable:          isAvailable,
		performanceRating:    performanceRating,
		totalOrdersCompleted: totalOrdersCompleted,
		hourlyRate:           hourlyRate,
		createdAt:            createdAt,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the staff member was created through a constructor.
func (s *StaffMember) Validate() error {
	if s == nil {
		return ErrStaffIsNotConstructed
	}
	return s.guard.Validate(ErrStaffIsNotConstructed)
}

// IsEqual compares two staff members by their unique identifiers.
func (s *StaffMember) IsEqual(other *StaffMember) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the staff member's unique identifier.
func (s *StaffMember) ID() kernel.UUID {
	return s.id
}

// RestaurantID returns the restaurant the staff member belongs to.
func (s *StaffMember) RestaurantID() kernel.UUID {
	return s.restaurantID
}

// Name returns the staff member's name.
func (s *StaffMember) Name() string {
	return s.name
}

// IsAvailable reports whether the staff member can take an order.
func (s *StaffMember) IsAvailable() bool {
	return s.isAvailable
}

// PerformanceRating returns the externally maintained rating in [0, 10].
func (s *StaffMember) PerformanceRating() float64 {
	return s.performanceRating
}

// TotalOrdersCompleted returns the lifetime completion counter.
func (s *StaffMember) TotalOrdersCompleted() int {
	return s.totalOrdersCompleted
}

// HourlyRate returns the staff member's hourly rate.
func (s *StaffMember) HourlyRate() kernel.Money {
	return s.hourlyRate
}

// CreatedAt returns the staff record creation time, the tie-break anchor of
// the scoring policy.
func (s *StaffMember) CreatedAt() time.Time {
	return s.createdAt
}

// TakeOrder claims the staff member for an order. Fails with
// ErrStaffNotAvailable when they are already busy or toggled unavailable.
func (s *StaffMember) TakeOrder() error {
	if !s.isAvailable {
		return ErrStaffNotAvailable
	}
	s.isAvailable = false
	return nil
}

// Release returns the staff member to the availability pool after the order
// they were working on reached a terminal state. The completion counter only
// grows for completed orders, not cancellations.
func (s *StaffMember) Release(completed bool) {
	s.isAvailable = true
	if completed {
		s.totalOrdersCompleted++
	}
}

// SetAvailability applies a staff- or system-driven availability toggle.
func (s *StaffMember) SetAvailability(available bool) {
	s.isAvailable = available
}
