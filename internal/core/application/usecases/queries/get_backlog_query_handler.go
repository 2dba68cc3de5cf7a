package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
)

// GetBacklogQueryHandler lists a restaurant's backlog in dispatch order.
type GetBacklogQueryHandler struct {
	db *gorm.DB
}

// NewGetBacklogQueryHandler creates a handler for backlog queries.
func NewGetBacklogQueryHandler(db *gorm.DB) GetBacklogQueryHandler {
	return GetBacklogQueryHandler{db: db}
}

// Handle executes the query. Rows come back oldest-first, the order they
// will be dispatched in.
func (h GetBacklogQueryHandler) Handle(
	ctx context.Context,
	query GetBacklogQuery,
) ([]GetBacklogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetBacklogQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.order_id,
			o.order_number,
			b.enqueued_at
		FROM backlog_entries b
		JOIN orders o ON o.id = b.order_id
		WHERE b.restaurant_id = ?
		ORDER BY b.enqueued_at
	`, query.RestaurantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID     uuid.UUID
			orderNumber string
			enqueuedAt  time.Time
		)

		if err = rows.Scan(&orderID, &orderNumber, &enqueuedAt); err != nil {
			return nil, err
		}

		resp := GetBacklogQueryResponse{
			OrderNumber: orderNumber,
			EnqueuedAt:  enqueuedAt,
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
