// Package staffrepo provides data transfer objects and mapping functions for
// staff member persistence.
package staffrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
)

// StaffDTO represents the database structure for persisting staff members.
// is_available carries the claim state: the conditional update in
// ClaimAvailable is what serializes concurrent assignments across nodes.
type StaffDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID         uuid.UUID `gorm:"type:uuid;index"`
	Name                 string
	IsAvailable          bool `gorm:"index"`
	PerformanceRating    float64
	TotalOrdersCompleted int
	HourlyRate           int64
	CreatedAt            time.Time
}

// TableName specifies the database table name for staff members.
func (StaffDTO) TableName() string {
	return "staff_members"
}

// fromDomain converts a staff domain aggregate to its database
// representation.
func fromDomain(aggregate *staff.StaffMember) StaffDTO {
	return StaffDTO{
		ID:                   aggregate.ID().Bytes(),
		RestaurantID:         aggregate.RestaurantID().Bytes(),
		Name:                 aggregate.Name(),
		IsAvailable:          aggregate.IsAvailable(),
		PerformanceRating:    aggregate.PerformanceRating(),
		TotalOrdersCompleted: aggregate.TotalOrdersCompleted(),
		HourlyRate:           aggregate.HourlyRate().Amount(),
		CreatedAt:            aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a staff domain aggregate using
// RestoreStaffMember.
func toDomain(dto StaffDTO) (*staff.StaffMember, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	hourlyRate, err := kernel.NewMoney(dto.HourlyRate)
	if err != nil {
		return nil, err
	}

	return staff.RestoreStaffMember(
		id,
		restaurantID,
		dto.Name,
		dto.IsAvailable,
		dto.PerformanceRating,
		dto.TotalOrdersCompleted,
		hourlyRate,
		dto.CreatedAt,
	)
}
