// Package backlogrepo persists the per-restaurant FIFO queues of orders that
// could not be assigned on submission.
package backlogrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/backlog"
	"fulfillment/internal/core/domain/model/kernel"
)

// EntryDTO represents one queued order. OrderID doubles as the primary key:
// an order is queued at most once.
type EntryDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	EnqueuedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for backlog entries.
func (EntryDTO) TableName() string {
	return "backlog_entries"
}

// fromDomain converts a backlog entry to its database representation.
func fromDomain(entry *backlog.Entry) EntryDTO {
	return EntryDTO{
		OrderID:      entry.OrderID().Bytes(),
		RestaurantID: entry.RestaurantID().Bytes(),
		EnqueuedAt:   entry.EnqueuedAt(),
	}
}

// toDomain converts a database DTO to a backlog entry using RestoreEntry.
func toDomain(dto EntryDTO) (*backlog.Entry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return backlog.RestoreEntry(orderID, restaurantID, dto.EnqueuedAt)
}
