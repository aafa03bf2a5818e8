package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// QuantityPlaces is the number of decimal places every quantity is rounded to.
const QuantityPlaces = 2

// Quantity is a non-negative decimal amount rounded to QuantityPlaces.
// The zero value is a valid zero quantity.
//
// Example:
//
//	qty, err := kernel.NewQuantity(decimal.RequireFromString("2.345"))
//	// qty.String() == "2.35"
type Quantity struct {
	value decimal.Decimal
}

// ZeroQuantity returns the zero quantity.
func ZeroQuantity() Quantity {
	return Quantity{}
}

// NewQuantity rounds d to QuantityPlaces and rejects negative values.
func NewQuantity(d decimal.Decimal) (Quantity, error) {
	rounded := d.Round(QuantityPlaces)
	if rounded.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%s is negative", rounded.StringFixed(QuantityPlaces)),
		)
	}
	return Quantity{value: rounded}, nil
}

// QuantityFromString parses and rounds a decimal string.
func QuantityFromString(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(d)
}

// MustQuantity is NewQuantity for constants and tests; it panics on invalid input.
func MustQuantity(s string) Quantity {
	q, err := QuantityFromString(s)
	if err != nil {
		panic(err)
	}
	return q
}

// Decimal returns the underlying decimal value.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Sub returns q - other, floored at zero.
func (q Quantity) Sub(other Quantity) Quantity {
	diff := q.value.Sub(other.value)
	if diff.IsNegative() {
		return Quantity{}
	}
	return Quantity{value: diff}
}

// Cmp compares q and other: -1 if q < other, 0 if equal, +1 if q > other.
func (q Quantity) Cmp(other Quantity) int {
	return q.value.Cmp(other.value)
}

func (q Quantity) Equal(other Quantity) bool { return q.Cmp(other) == 0 }

func (q Quantity) LessThan(other Quantity) bool { return q.Cmp(other) < 0 }

func (q Quantity) GreaterThan(other Quantity) bool { return q.Cmp(other) > 0 }

func (q Quantity) IsZero() bool { return q.value.IsZero() }

func (q Quantity) IsPositive() bool { return q.value.IsPositive() }

// String renders the quantity with exactly QuantityPlaces decimals.
func (q Quantity) String() string {
	return q.value.StringFixed(QuantityPlaces)
}
