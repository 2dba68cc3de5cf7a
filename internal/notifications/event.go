package notifications

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventType names what happened. The set is part of the contract with
// subscribers; values are stable wire strings.
type EventType string

const (
	// EventOrderConfirmed tells the customer session their order was
	// accepted, with its human-readable number.
	EventOrderConfirmed EventType = "order_confirmed"

	// EventOrderAssigned tells the session and the staff member that the
	// order was matched with staff.
	EventOrderAssigned EventType = "order_assigned"

	// EventOrderUnassigned alerts the restaurant dashboard that an order
	// entered the backlog with nobody available to take it.
	EventOrderUnassigned EventType = "order_unassigned"

	// EventOrderStatusUpdate carries every lifecycle transition to the
	// session and the restaurant dashboard.
	EventOrderStatusUpdate EventType = "order_status_update"

	// EventNewOrder tells the assigned staff member an order is waiting
	// for them.
	EventNewOrder EventType = "new_order"

	// EventPaymentConfirmed and EventPaymentFailed report the outcome of
	// an asynchronous gateway charge to the session.
	EventPaymentConfirmed EventType = "payment_confirmed"
	EventPaymentFailed    EventType = "payment_failed"

	// EventTipReceived tells the staff member a paid order carried a tip.
	EventTipReceived EventType = "tip_received"
)

// Event is one notification as delivered to subscribers. Data carries the
// type-specific fields (order id, number, status, amounts) as loose key/value
// pairs; subscribers are UI surfaces, not state machines, so a schema per
// type would buy nothing.
type Event struct {
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType EventType, data map[string]any) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// ChannelKey addresses one fan-out channel. Keys are flat strings so they
// can double as Redis Pub/Sub channel names.
type ChannelKey string

// SessionChannel addresses one customer session.
func SessionChannel(sessionID kernel.UUID) ChannelKey {
	return ChannelKey("session:" + sessionID.String())
}

// StaffChannel addresses one staff member.
func StaffChannel(staffID kernel.UUID) ChannelKey {
	return ChannelKey("staff:" + staffID.String())
}

// RestaurantChannel addresses a restaurant's dashboard.
func RestaurantChannel(restaurantID kernel.UUID) ChannelKey {
	return ChannelKey("restaurant:" + restaurantID.String())
}
