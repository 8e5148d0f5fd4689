package kernel

import (
	"fmt"

	"relief/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// quantityScale is the number of fractional digits a stock quantity carries.
// All warehouse stock is tracked as decimal(12,2); comparisons are exact.
const quantityScale = 2

// ErrQuantityIsNegative is returned when constructing a Quantity from a
// negative amount. Quantity buckets never go below zero.
var ErrQuantityIsNegative = errs.NewValueIsInvalidError("quantity must not be negative")

// Quantity is an immutable fixed-point stock amount with two fractional
// digits. It backs the usable/reserved/defective/expired inventory buckets and
// all request/package line quantities. Arithmetic that would produce a
// negative result fails instead of silently clamping.
type Quantity struct {
	amount decimal.Decimal
}

// ZeroQuantity returns the zero stock amount.
func ZeroQuantity() Quantity {
	return Quantity{amount: decimal.Zero}
}

// NewQuantity creates a Quantity from a decimal amount, truncating to two
// fractional digits. Negative amounts are rejected.
func NewQuantity(amount decimal.Decimal) (Quantity, error) {
	if amount.IsNegative() {
		return Quantity{}, ErrQuantityIsNegative
	}
	return Quantity{amount: amount.Truncate(quantityScale)}, nil
}

// QuantityFromString parses a decimal string such as "12.50".
func QuantityFromString(s string) (Quantity, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(amount)
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{amount: q.amount.Add(other.amount)}
}

// Sub returns q minus other, failing if the result would be negative.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	result := q.amount.Sub(other.amount)
	if result.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%s - %s is negative", q.amount, other.amount),
		)
	}
	return Quantity{amount: result}, nil
}

// IsPositive reports whether the quantity is strictly greater than zero.
func (q Quantity) IsPositive() bool {
	return q.amount.IsPositive()
}

// IsZero reports whether the quantity equals zero.
func (q Quantity) IsZero() bool {
	return q.amount.IsZero()
}

// LessThan reports whether q is strictly less than other.
func (q Quantity) LessThan(other Quantity) bool {
	return q.amount.LessThan(other.amount)
}

// Equal reports exact decimal equality.
func (q Quantity) Equal(other Quantity) bool {
	return q.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal for persistence mapping.
func (q Quantity) Decimal() decimal.Decimal {
	return q.amount
}

// String renders the quantity with its fixed two-digit scale.
func (q Quantity) String() string {
	return q.amount.StringFixed(quantityScale)
}
