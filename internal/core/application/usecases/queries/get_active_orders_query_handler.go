package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler lists a restaurant's non-terminal orders,
// oldest first.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Completed and cancelled orders are excluded.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			table_id,
			status,
			assigned_staff_id,
			total_amount,
			created_at
		FROM orders
		WHERE restaurant_id = ?
		  AND status NOT IN (?, ?)
		ORDER BY created_at
	`, query.RestaurantID().Bytes(), order.Completed.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id              uuid.UUID
			orderNumber     string
			tableID         uuid.UUID
			status          string
			assignedStaffID *uuid.UUID
			totalAmount     int64
			createdAt       time.Time
		)

		if err = rows.Scan(
			&id,
			&orderNumber,
			&tableID,
			&status,
			&assignedStaffID,
			&totalAmount,
			&createdAt,
		); err != nil {
			return nil, err
		}

		resp := GetActiveOrdersQueryResponse{
			OrderNumber: orderNumber,
			Status:      status,
			TotalAmount: totalAmount,
			CreatedAt:   createdAt,
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.TableID, err = kernel.UUIDFromBytes(tableID[:]); err != nil {
			return nil, err
		}
		if assignedStaffID != nil {
			staffID, idErr := kernel.UUIDFromBytes(assignedStaffID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.AssignedStaffID = &staffID
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
