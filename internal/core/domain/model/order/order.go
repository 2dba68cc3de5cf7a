package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrEmptyCart is returned when an order is submitted without items.
	ErrEmptyCart = errors.New("order must contain at least one item")
	// ErrUnauthorized is returned when a staff-driven transition is
	// requested by someone other than the assigned staff member.
	ErrUnauthorized = errors.New("actor is not the assigned staff member")
	// ErrOrderNumberIsRequired is returned when the order number is empty.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")
)

// Order is the aggregate root of the fulfillment core. It owns its items and
// derived totals, tracks the status lifecycle, and records which staff member
// it was assigned to.
//
// Invariants:
//   - totalAmount == subtotal + taxAmount + tipAmount, always recomputed,
//     never independently mutated
//   - items are created atomically with the order and immutable afterwards
//   - status changes only through Assign, TransitionTo, and CancelByOwner
//   - orders are never deleted; cancellation is a terminal status
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-readable, restaurant-scoped number,
	// monotonically increasing per calendar day (e.g. "ORD-20260829-007")
	orderNumber string

	// restaurantID scopes the order to one restaurant
	restaurantID kernel.UUID

	// tableID identifies the table the order was placed from
	tableID kernel.UUID

	// sessionID identifies the customer session; nil for staff-created
	// orders, which have no customer channel to notify
	sessionID *kernel.UUID

	// items is the ordered list of lines, immutable after construction
	items []*Item

	// derived amounts, recomputed at construction
	subtotal    kernel.Money
	taxAmount   kernel.Money
	tipAmount   kernel.Money
	totalAmount kernel.Money

	// status is the current lifecycle state
	status Status

	// assignedStaffID is set by the assignment engine (nil until assigned)
	assignedStaffID *kernel.UUID

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	// createdAt is the submission time
	createdAt time.Time

	// statusChangedAt records the time of each status transition
	statusChangedAt map[Status]time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order from a submitted cart. The subtotal is the sum
// of the item total prices, the tax amount is subtotal scaled by taxRate, and
// the total is subtotal + tax + tip. The order starts in Pending status with
// payment pending.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	restaurantID kernel.UUID,
	tableID kernel.UUID,
	sessionID *kernel.UUID,
	items []*Item,
	paymentMethod PaymentMethod,
	tipAmount kernel.Money,
	taxRate float64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		tableID.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	if orderNumber == "" {
		return nil, ErrOrderNumberIsRequired
	}

	if sessionID != nil {
		if err := sessionID.Validate(); err != nil {
			return nil, err
		}
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if taxRate < 0 || taxRate > 1 {
		return nil, errs.NewValueIsOutOfRangeError("tax rate", taxRate, 0, 1)
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(item.TotalPrice())
	}

	taxAmount := subtotal.MultiplyRate(taxRate)
	now := time.Now().UTC()

	return &Order{
		id:              id,
		orderNumber:     orderNumber,
		restaurantID:    restaurantID,
		tableID:         tableID,
		sessionID:       sessionID,
		items:           items,
		subtotal:        subtotal,
		taxAmount:       taxAmount,
		tipAmount:       tipAmount,
		totalAmount:     subtotal.Add(taxAmount).Add(tipAmount),
		status:          Pending,
		paymentMethod:   paymentMethod,
		paymentStatus:   PaymentPending,
		createdAt:       now,
		statusChangedAt: map[Status]time.Time{Pending: now},
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistence, preserving
// its stored status, assignment, payment state, and transition history. The
// stored amounts are trusted as-is because they were derived at submission
// time and the tax rate may have changed since.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	restaurantID kernel.UUID,
	tableID kernel.UUID,
	sessionID *kernel.UUID,
	items []*Item,
	subtotal kernel.Money,
	taxAmount kernel.Money,
	tipAmount kernel.Money,
	status Status,
	assignedStaffID *kernel.UUID,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	createdAt time.Time,
	statusChangedAt map[Status]time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		tableID.Validate(),
		status.Validate(),
		paymentMethod.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if orderNumber == "" {
		return nil, ErrOrderNumberIsRequired
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if assignedStaffID != nil {
		if err := assignedStaffID.Validate(); err != nil {
			return nil, err
		}
	}

	if statusChangedAt == nil {
		statusChangedAt = map[Status]time.Time{}
	}

	return &Order{
		id:              id,
		orderNumber:     orderNumber,
		restaurantID:    restaurantID,
		tableID:         tableID,
		sessionID:       sessionID,
		items:           items,
		subtotal:        subtotal,
		taxAmount:       taxAmount,
		tipAmount:       tipAmount,
		totalAmount:     subtotal.Add(taxAmount).Add(tipAmount),
		status:          status,
		assignedStaffID: assignedStaffID,
		paymentMethod:   paymentMethod,
		paymentStatus:   paymentStatus,
		createdAt:       createdAt,
		statusChangedAt: statusChangedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the restaurant-scoped, per-day order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// RestaurantID returns the restaurant the order belongs to.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// TableID returns the table the order was placed from.
func (o *Order) TableID() kernel.UUID {
	return o.tableID
}

// SessionID returns the customer session identifier.
// Returns nil for staff-created orders.
func (o *Order) SessionID() *kernel.UUID {
	return o.sessionID
}

// Items returns the order lines. The returned slice is a copy to prevent
// external modification; the items themselves are immutable.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// Subtotal returns the sum of the item total prices.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// TaxAmount returns the tax derived from the subtotal.
func (o *Order) TaxAmount() kernel.Money {
	return o.taxAmount
}

// TipAmount returns the tip the customer added at submission.
func (o *Order) TipAmount() kernel.Money {
	return o.tipAmount
}

// TotalAmount returns subtotal + tax + tip.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// AssignedStaff returns the assigned staff member's ID.
// Returns nil while the order is unassigned.
func (o *Order) AssignedStaff() *kernel.UUID {
	return o.assignedStaffID
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the current settlement state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// CreatedAt returns the submission time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StatusChangedAt returns the time the order entered the given status and
// whether it ever did.
func (o *Order) StatusChangedAt(status Status) (time.Time, bool) {
	t, ok := o.statusChangedAt[status]
	return t, ok
}

// Assign moves the order from Pending to Assigned and records the staff
// member. This transition is reserved for the assignment engine; actor-driven
// requests for the Assigned status are rejected by TransitionTo.
func (o *Order) Assign(staffID kernel.UUID) error {
	if err := staffID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	o.applyStatus(newStatus)
	o.assignedStaffID = &staffID
	return nil
}

// TransitionTo applies a staff- or system-driven status change.
//
// Rules enforced:
//   - the move must be legal per the lifecycle chain (ErrInvalidTransition)
//   - Assigned is engine-driven and cannot be requested here
//   - when actorStaffID is non-nil, it must match the assigned staff member
//     (ErrUnauthorized); owner-level cancellation goes through CancelByOwner
//
// On success the new status and its transition timestamp are recorded.
func (o *Order) TransitionTo(target Status, actorStaffID *kernel.UUID) error {
	if target == Assigned {
		return fmt.Errorf("%w: %s -> %s is engine-driven", ErrInvalidTransition, o.status, target)
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if actorStaffID != nil {
		if o.assignedStaffID == nil || !actorStaffID.IsEqual(*o.assignedStaffID) {
			return ErrUnauthorized
		}
	}

	o.applyStatus(newStatus)
	return nil
}

// CancelByOwner cancels the order on behalf of an owner-level actor, which is
// always authorized from any non-terminal state.
func (o *Order) CancelByOwner() error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.applyStatus(newStatus)
	return nil
}

// BeginPaymentProcessing marks the start of an asynchronous gateway charge.
func (o *Order) BeginPaymentProcessing() error {
	return o.applyPaymentStatus(PaymentProcessing)
}

// CompletePayment records a successful gateway charge.
func (o *Order) CompletePayment() error {
	return o.applyPaymentStatus(PaymentCompleted)
}

// FailPayment records a failed gateway charge.
func (o *Order) FailPayment() error {
	return o.applyPaymentStatus(PaymentFailed)
}

// RefundPayment records that a completed charge was returned.
func (o *Order) RefundPayment() error {
	return o.applyPaymentStatus(PaymentRefunded)
}

func (o *Order) applyStatus(newStatus Status) {
	o.status = newStatus
	o.statusChangedAt[newStatus] = time.Now().UTC()
}

func (o *Order) applyPaymentStatus(target PaymentStatus) error {
	newStatus, err := o.paymentStatus.transitionTo(target)
	if err != nil {
		return err
	}
	o.paymentStatus = newStatus
	return nil
}
