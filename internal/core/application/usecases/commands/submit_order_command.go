package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrCartIsRequired        = errors.New("cart must contain at least one line")
	ErrLineQuantityIsInvalid = errors.New("line quantity must be greater than 0")
)

// CartLine is one requested line of a submitted cart: which menu item, how
// many, and an optional customer note. Prices are not part of the request;
// the handler snapshots them from the catalog.
type CartLine struct {
	MenuItemID   kernel.UUID
	Quantity     int
	Instructions string
}

// SubmitOrderCommand represents a request to turn a cart into an order.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	restaurantID  kernel.UUID
	tableID       kernel.UUID
	sessionID     *kernel.UUID
	lines         []CartLine
	paymentMethod order.PaymentMethod
	tipAmount     kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a cart. Validates the
// identifiers, that the cart is non-empty, and that every line has a
// positive quantity. sessionID may be nil for staff-created orders.
func NewSubmitOrderCommand(
	orderID kernel.UUID,
	restaurantID kernel.UUID,
	tableID kernel.UUID,
	sessionID *kernel.UUID,
	lines []CartLine,
	paymentMethod order.PaymentMethod,
	tipAmount kernel.Money,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setTableID(tableID),
		cmd.setSessionID(sessionID),
		cmd.setLines(lines),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	cmd.tipAmount = tipAmount
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the restaurant the order is for.
func (c SubmitOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// TableID returns the table the order was placed from.
func (c SubmitOrderCommand) TableID() kernel.UUID {
	return c.tableID
}

// SessionID returns the customer session, or nil for staff-created orders.
func (c SubmitOrderCommand) SessionID() *kernel.UUID {
	return c.sessionID
}

// Lines returns the requested cart lines.
func (c SubmitOrderCommand) Lines() []CartLine {
	return c.lines
}

// PaymentMethod returns how the order will be paid.
func (c SubmitOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// TipAmount returns the tip the customer added.
func (c SubmitOrderCommand) TipAmount() kernel.Money {
	return c.tipAmount
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *SubmitOrderCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	c.tableID = tableID
	return nil
}

func (c *SubmitOrderCommand) setSessionID(sessionID *kernel.UUID) error {
	if sessionID != nil {
		if err := sessionID.Validate(); err != nil {
			return err
		}
	}
	c.sessionID = sessionID
	return nil
}

func (c *SubmitOrderCommand) setLines(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrCartIsRequired
	}
	for _, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return ErrLineQuantityIsInvalid
		}
	}
	c.lines = lines
	return nil
}

func (c *SubmitOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
