package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderNumberSequence hands out the per-restaurant, per-day counters behind
// human-readable order numbers ("ORD-20260829-007"). Counters start at 1 each
// calendar day and never repeat within it, even under concurrent submissions.
type OrderNumberSequence interface {
	// Next atomically increments and returns the counter for the
	// restaurant and calendar day.
	Next(ctx context.Context, restaurantID kernel.UUID, day time.Time) (int, error)

	// PurgeBefore deletes counters for days strictly before the cutoff.
	// Old counters are dead weight once their day has passed; a cleanup
	// job calls this on a schedule.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
