// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items and the status log are owned rows: created with the order, never
// updated afterwards.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber     string     `gorm:"uniqueIndex:idx_orders_restaurant_number"`
	RestaurantID    uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_orders_restaurant_number"`
	TableID         uuid.UUID  `gorm:"type:uuid"`
	SessionID       *uuid.UUID `gorm:"type:uuid"`
	AssignedStaffID *uuid.UUID `gorm:"type:uuid;index"`
	Subtotal        int64
	TaxAmount       int64
	TipAmount       int64
	TotalAmount     int64
	Status          string `gorm:"index"`
	PaymentMethod   string
	PaymentStatus   string
	CreatedAt       time.Time

	Items     []ItemDTO      `gorm:"foreignKey:OrderID;references:ID"`
	StatusLog []StatusLogDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Lines are immutable: written once with
// the order, never updated.
type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID   uuid.UUID `gorm:"type:uuid"`
	Quantity     int
	UnitPrice    int64
	TotalPrice   int64
	Instructions string
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusLogDTO records when an order entered a status. One row per status
// per order; re-inserting an existing row is a no-op.
type StatusLogDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status    string    `gorm:"primaryKey"`
	ChangedAt time.Time
}

// TableName specifies the database table name for the status log.
func (StatusLogDTO) TableName() string {
	return "order_status_log"
}

// fromDomain converts an order domain aggregate to its database
// representation, including item lines and the status history.
func fromDomain(aggregate *order.Order) OrderDTO {
	var sessionID *uuid.UUID
	if id := aggregate.SessionID(); id != nil {
		raw := id.Bytes()
		sessionID = &raw
	}

	var staffID *uuid.UUID
	if id := aggregate.AssignedStaff(); id != nil {
		raw := id.Bytes()
		staffID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      aggregate.ID().Bytes(),
			MenuItemID:   item.MenuItemID().Bytes(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().Amount(),
			TotalPrice:   item.TotalPrice().Amount(),
			Instructions: item.Instructions(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		TableID:         aggregate.TableID().Bytes(),
		SessionID:       sessionID,
		AssignedStaffID: staffID,
		Subtotal:        aggregate.Subtotal().Amount(),
		TaxAmount:       aggregate.TaxAmount().Amount(),
		TipAmount:       aggregate.TipAmount().Amount(),
		TotalAmount:     aggregate.TotalAmount().Amount(),
		Status:          aggregate.Status().String(),
		PaymentMethod:   aggregate.PaymentMethod().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		CreatedAt:       aggregate.CreatedAt(),
		Items:           items,
		StatusLog:       statusLogFromDomain(aggregate),
	}
}

// statusLogFromDomain projects the aggregate's transition timestamps into
// log rows.
func statusLogFromDomain(aggregate *order.Order) []StatusLogDTO {
	statuses := []order.Status{
		order.Pending, order.Assigned, order.Preparing,
		order.Ready, order.Served, order.Completed, order.Cancelled,
	}

	log := make([]StatusLogDTO, 0, len(statuses))
	for _, status := range statuses {
		if changedAt, ok := aggregate.StatusChangedAt(status); ok {
			log = append(log, StatusLogDTO{
				OrderID:   aggregate.ID().Bytes(),
				Status:    status.String(),
				ChangedAt: changedAt,
			})
		}
	}
	return log
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}

	var sessionID *kernel.UUID
	if dto.SessionID != nil {
		sID, sessionErr := kernel.UUIDFromBytes((*dto.SessionID)[:])
		if sessionErr != nil {
			return nil, sessionErr
		}
		sessionID = &sID
	}

	var staffID *kernel.UUID
	if dto.AssignedStaffID != nil {
		stID, staffErr := kernel.UUIDFromBytes((*dto.AssignedStaffID)[:])
		if staffErr != nil {
			return nil, staffErr
		}
		staffID = &stID
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	taxAmount, err := kernel.NewMoney(dto.TaxAmount)
	if err != nil {
		return nil, err
	}

	tipAmount, err := kernel.NewMoney(dto.TipAmount)
	if err != nil {
		return nil, err
	}

	statusChangedAt, err := statusLogToDomain(dto.StatusLog)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		restaurantID,
		tableID,
		sessionID,
		items,
		subtotal,
		taxAmount,
		tipAmount,
		status,
		staffID,
		paymentMethod,
		paymentStatus,
		dto.CreatedAt,
		statusChangedAt,
	)
}

func itemsToDomain(dtos []ItemDTO) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.RestoreItem(id, menuItemID, dto.Quantity, unitPrice, dto.Instructions)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func statusLogToDomain(dtos []StatusLogDTO) (map[order.Status]time.Time, error) {
	log := make(map[order.Status]time.Time, len(dtos))
	for _, dto := range dtos {
		status, err := order.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}
		log[status] = dto.ChangedAt
	}
	return log, nil
}
