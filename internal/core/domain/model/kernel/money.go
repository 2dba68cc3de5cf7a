package kernel

import (
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in minor currency
// units (e.g. cents). Amounts are never negative: order totals, item prices,
// and tips are all non-negative by construction.
//
// Money is immutable; arithmetic methods return new values. The zero value is
// a valid zero amount.
type Money struct {
	amount int64
}

// NewMoney creates a Money from an amount in minor units.
// Negative amounts are rejected.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// MultiplyQty returns the amount multiplied by a (non-negative) quantity.
// Used to derive an item's total price from its unit price.
func (m Money) MultiplyQty(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is negative", qty),
		)
	}
	return Money{amount: m.amount * int64(qty)}, nil
}

// MultiplyRate returns the amount scaled by a rate (e.g. a tax rate of 0.18),
// rounded half away from zero to the nearest minor unit.
func (m Money) MultiplyRate(rate float64) Money {
	return Money{amount: int64(math.Round(float64(m.amount) * rate))}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount with two decimal places, e.g. "2.56" for 256
// minor units. Intended for logs and human-readable output.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}
