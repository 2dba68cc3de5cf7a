package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order: a menu item reference, a quantity, and the unit
// price snapshotted from the catalog at submission time. Items belong to
// exactly one order, are created atomically with it, and are never mutated
// afterwards. A later catalog price change does not affect them, and
// corrections require cancelling the order, not editing items.
type Item struct {
	// id uniquely identifies the line within the system
	id kernel.UUID
	// menuItemID references the catalog entry this line was priced from
	menuItemID kernel.UUID
	// quantity is how many units were ordered (always > 0)
	quantity int
	// unitPrice is the catalog price at submission time
	unitPrice kernel.Money
	// totalPrice is always unitPrice * quantity
	totalPrice kernel.Money
	// instructions is optional free-text from the customer
	instructions string

	guard guard.ConstructorGuard
}

// NewItem creates an order line with the price snapshot taken at submission
// time. Quantity must be positive and the unit price strictly greater than
// zero; totalPrice is derived and never set by callers.
func NewItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	instructions string,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		menuItemID.Validate(),
	); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if !unitPrice.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%s is not greater than 0", unitPrice),
		)
	}

	totalPrice, err := unitPrice.MultiplyQty(quantity)
	if err != nil {
		return nil, err
	}

	return &Item{
		id:           id,
		menuItemID:   menuItemID,
		quantity:     quantity,
		unitPrice:    unitPrice,
		totalPrice:   totalPrice,
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs an order line from persistence.
func RestoreItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	instructions string,
) (*Item, error) {
	return NewItem(id, menuItemID, quantity, unitPrice, instructions)
}

// Validate ensures the item was created through NewItem.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// MenuItemID returns the catalog entry this line was priced from.
func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the ordered unit count.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken at submission time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice returns unitPrice multiplied by quantity.
func (i *Item) TotalPrice() kernel.Money {
	return i.totalPrice
}

// Instructions returns the optional customer note for this line.
func (i *Item) Instructions() string {
	return i.instructions
}
