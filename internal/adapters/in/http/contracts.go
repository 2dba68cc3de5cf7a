package http

import "time"

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CartLineRequest is one requested line of a submitted cart.
type CartLineRequest struct {
	MenuItemID   string `json:"menu_item_id"`
	Quantity     int    `json:"quantity"`
	Instructions string `json:"instructions,omitempty"`
}

// SubmitOrderRequest is the body of POST /api/v1/orders.
type SubmitOrderRequest struct {
	RestaurantID  string            `json:"restaurant_id"`
	TableID       string            `json:"table_id"`
	SessionID     *string           `json:"session_id,omitempty"`
	Items         []CartLineRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	TipAmount     int64             `json:"tip_amount"`
}

// SubmitOrderResponse reports the created order and its assignment outcome.
type SubmitOrderResponse struct {
	ID              string  `json:"id"`
	OrderNumber     string  `json:"order_number"`
	Status          string  `json:"status"`
	Subtotal        int64   `json:"subtotal"`
	TaxAmount       int64   `json:"tax_amount"`
	TipAmount       int64   `json:"tip_amount"`
	TotalAmount     int64   `json:"total_amount"`
	AssignedStaffID *string `json:"assigned_staff_id,omitempty"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:orderID/status.
// StaffID identifies the acting staff member; omitted for system-driven
// transitions.
type TransitionOrderRequest struct {
	Status  string  `json:"status"`
	StaffID *string `json:"staff_id,omitempty"`
}

// SetAvailabilityRequest is the body of
// PUT /api/v1/staff/:staffID/availability.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// ActiveOrder is one row of the active orders view.
type ActiveOrder struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	TableID         string    `json:"table_id"`
	Status          string    `json:"status"`
	AssignedStaffID *string   `json:"assigned_staff_id,omitempty"`
	TotalAmount     int64     `json:"total_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// BacklogEntry is one row of the backlog view, in dispatch order.
type BacklogEntry struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}
