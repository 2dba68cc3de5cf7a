// Package catalog provides the read-side view of the menu that order
// submission needs: the current price and preparation time of a menu item.
// The catalog itself is owned by another part of the system; this package
// only models the snapshot the fulfillment core prices carts from.
package catalog

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMenuItemPriceIsNotConstructed is returned when a MenuItemPrice was not
// created through NewMenuItemPrice.
var ErrMenuItemPriceIsNotConstructed = errors.New("MenuItemPrice must be created via NewMenuItemPrice constructor")

// MenuItemPrice is the immutable pricing snapshot of one menu item at lookup
// time. Order items copy the unit price from it so later menu edits never
// affect already-submitted orders.
type MenuItemPrice struct {
	menuItemID      kernel.UUID
	unitPrice       kernel.Money
	prepTimeMinutes int

	guard guard.ConstructorGuard
}

// NewMenuItemPrice creates a pricing snapshot. The unit price must be
// strictly positive and the preparation time non-negative.
func NewMenuItemPrice(menuItemID kernel.UUID, unitPrice kernel.Money, prepTimeMinutes int) (*MenuItemPrice, error) {
	if err := menuItemID.Validate(); err != nil {
		return nil, err
	}

	if !unitPrice.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%s is not greater than 0", unitPrice),
		)
	}

	if prepTimeMinutes < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"prep time is invalid",
			fmt.Errorf("%d is negative", prepTimeMinutes),
		)
	}

	return &MenuItemPrice{
		menuItemID:      menuItemID,
		unitPrice:       unitPrice,
		prepTimeMinutes: prepTimeMinutes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the snapshot was created through NewMenuItemPrice.
func (p *MenuItemPrice) Validate() error {
	if p == nil {
		return ErrMenuItemPriceIsNotConstructed
	}
	return p.guard.Validate(ErrMenuItemPriceIsNotConstructed)
}

// MenuItemID returns the catalog entry the snapshot was taken from.
func (p *MenuItemPrice) MenuItemID() kernel.UUID {
	return p.menuItemID
}

// UnitPrice returns the current price of one unit.
func (p *MenuItemPrice) UnitPrice() kernel.Money {
	return p.unitPrice
}

// PrepTimeMinutes returns the expected preparation time.
func (p *MenuItemPrice) PrepTimeMinutes() int {
	return p.prepTimeMinutes
}
