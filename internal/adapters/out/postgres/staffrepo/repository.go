package staffrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"
)

// GormStaffRepository implements StaffRepository using GORM.
type GormStaffRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStaffRepository creates a new GORM staff repository.
func NewGormStaffRepository(db *gorm.DB, tracker aggregateTracker) *GormStaffRepository {
	return &GormStaffRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new staff member to the database.
func (r *GormStaffRepository) Add(ctx context.Context, aggregate *staff.StaffMember) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing staff member to the database.
func (r *GormStaffRepository) Update(ctx context.Context, aggregate *staff.StaffMember) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&StaffDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"is_available":           dto.IsAvailable,
			"performance_rating":     dto.PerformanceRating,
			"total_orders_completed": dto.TotalOrdersCompleted,
			"hourly_rate":            dto.HourlyRate,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a staff member by ID.
func (r *GormStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.StaffMember, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StaffDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staff member", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByRestaurant retrieves every staff member of the restaurant.
func (r *GormStaffRepository) GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*staff.StaffMember, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StaffDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "restaurant_id = ?", restaurantID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	members := make([]*staff.StaffMember, 0, len(dtos))
	for _, dto := range dtos {
		member, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

// ClaimAvailable atomically flips the staff member from available to busy.
// The conditional update is the arbiter between concurrent claimers: exactly
// one caller sees RowsAffected == 1, everyone else gets
// staff.ErrStaffNotAvailable.
func (r *GormStaffRepository) ClaimAvailable(ctx context.Context, id kernel.UUID) (*staff.StaffMember, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&StaffDTO{}).
		Where("id = ? AND is_available = ?", id.Bytes(), true).
		Update("is_available", false)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a lost race from a missing record.
		var count int64
		err := r.db.WithContext(ctx).
			Model(&StaffDTO{}).
			Where("id = ?", id.Bytes()).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errs.NewObjectNotFoundError("staff member", id.String())
		}
		return nil, staff.ErrStaffNotAvailable
	}

	return r.Get(ctx, id)
}
