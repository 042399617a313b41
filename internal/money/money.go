// Package money centralizes currency arithmetic rules for the POS core.
// Every amount that crosses a service boundary is normalized to two decimal
// places here, instead of rounding ad hoc at each field accessor.
package money

import "github.com/shopspring/decimal"

// Round normalizes an amount to 2-decimal currency precision (half-up).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Subtotal computes round(quantity × unitPrice).
func Subtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Sum adds any number of amounts and rounds the result.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round(total)
}

// Equal reports whether two amounts are the same after normalization.
// decimal.Decimal keeps exponent information, so 50 and 50.00 compare
// unequal with == but equal here.
func Equal(a, b decimal.Decimal) bool {
	return Round(a).Cmp(Round(b)) == 0
}

// IsNegative reports whether the amount is below zero.
func IsNegative(d decimal.Decimal) bool {
	return d.IsNegative()
}
