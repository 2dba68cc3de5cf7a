package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
)

// SequenceDTO holds one per-restaurant, per-day order number counter.
type SequenceDTO struct {
	RestaurantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day          time.Time `gorm:"type:date;primaryKey"`
	Value        int
}

// TableName specifies the database table name for order number counters.
func (SequenceDTO) TableName() string {
	return "order_number_sequences"
}

// GormOrderNumberSequence implements OrderNumberSequence on a single upsert:
// the ON CONFLICT increment makes Next safe under concurrent submissions
// without an explicit lock.
type GormOrderNumberSequence struct {
	db *gorm.DB
}

// NewGormOrderNumberSequence creates a new GORM-backed sequence.
func NewGormOrderNumberSequence(db *gorm.DB) *GormOrderNumberSequence {
	return &GormOrderNumberSequence{db: db}
}

// Next atomically increments and returns the counter for the restaurant and
// calendar day.
func (s *GormOrderNumberSequence) Next(ctx context.Context, restaurantID kernel.UUID, day time.Time) (int, error) {
	if err := restaurantID.Validate(); err != nil {
		return 0, err
	}

	var value int
	err := s.db.WithContext(ctx).Raw(
		`INSERT INTO order_number_sequences (restaurant_id, day, value)
		 VALUES (?, ?, 1)
		 ON CONFLICT (restaurant_id, day)
		 DO UPDATE SET value = order_number_sequences.value + 1
		 RETURNING value`,
		restaurantID.Bytes(),
		day.Format("2006-01-02"),
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}

// PurgeBefore deletes counters for days strictly before the cutoff and
// returns the number of rows removed.
func (s *GormOrderNumberSequence) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Delete(&SequenceDTO{}, "day < ?", cutoff.Format("2006-01-02"))
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
