package backlogrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/core/domain/model/backlog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// GormBacklogRepository implements BacklogRepository using GORM.
type GormBacklogRepository struct {
	db *gorm.DB
}

// NewGormBacklogRepository creates a new GORM backlog repository.
func NewGormBacklogRepository(db *gorm.DB) *GormBacklogRepository {
	return &GormBacklogRepository{db: db}
}

// Add queues an order at the tail of its restaurant's backlog.
func (r *GormBacklogRepository) Add(ctx context.Context, entry *backlog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// PopOldest removes and returns the oldest entry of the restaurant's backlog.
// The row is locked FOR UPDATE so two transactions cannot dispatch the same
// order; the second popper blocks until the first commits its delete and then
// sees the next entry.
func (r *GormBacklogRepository) PopOldest(ctx context.Context, restaurantID kernel.UUID) (*backlog.Entry, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("restaurant_id = ?", restaurantID.Bytes()).
		Order("enqueued_at ASC, order_id ASC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrBacklogIsEmpty
		}
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Delete(&EntryDTO{}, "order_id = ?", dto.OrderID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Remove deletes the entry for the given order if one exists.
func (r *GormBacklogRepository) Remove(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Delete(&EntryDTO{}, "order_id = ?", orderID.Bytes()).Error
}

// GetAllByRestaurant returns the restaurant's queue oldest-first without
// consuming it.
func (r *GormBacklogRepository) GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*backlog.Entry, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID.Bytes()).
		Order("enqueued_at ASC, order_id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*backlog.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
