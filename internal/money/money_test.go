package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, "10.01", Round(decimal.RequireFromString("10.005")).String())
	assert.Equal(t, "10", Round(decimal.RequireFromString("10.004")).String())
	assert.Equal(t, "-10.01", Round(decimal.RequireFromString("-10.005")).String())
}

func TestSubtotal(t *testing.T) {
	// 3 × 12.50 = 37.50
	got := Subtotal(3, decimal.RequireFromString("12.50"))
	assert.Equal(t, "37.5", got.String())

	// Rounding happens once on the product, not per unit: 3 × 0.335 = 1.005 → 1.01
	got = Subtotal(3, decimal.RequireFromString("0.335"))
	assert.Equal(t, "1.01", got.String())
}

func TestSum(t *testing.T) {
	got := Sum(
		decimal.RequireFromString("10.00"),
		decimal.RequireFromString("20.50"),
		decimal.RequireFromString("0.05"),
	)
	assert.Equal(t, "30.55", got.String())

	assert.True(t, Sum().IsZero())
}

func TestEqualIgnoresExponent(t *testing.T) {
	// 50 and 50.00 carry different exponents; Equal must treat them as the same amount.
	a := decimal.New(50, 0)
	b := decimal.New(5000, -2)
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, decimal.New(5001, -2)))
}

func TestIsNegative(t *testing.T) {
	assert.True(t, IsNegative(decimal.RequireFromString("-0.01")))
	assert.False(t, IsNegative(decimal.Zero))
	assert.False(t, IsNegative(decimal.RequireFromString("0.01")))
}
