package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeOpeningOnly(t *testing.T) {
	s := Compute(dec("100.00"), nil, nil)

	assert.Equal(t, "100", s.ExpectedAmount.String())
	assert.Equal(t, 0, s.SalesCount)
	assert.Equal(t, 0, s.MovementsCount)
}

func TestComputeCashSaleRaisesExpected(t *testing.T) {
	sales := []model.Sale{
		{Total: dec("50.00"), PaymentMethod: model.PaymentCash},
	}

	s := Compute(dec("100.00"), sales, nil)

	assert.Equal(t, "50", s.SalesCash.String())
	assert.Equal(t, "150", s.ExpectedAmount.String())
}

func TestComputeMovementLowersExpected(t *testing.T) {
	sales := []model.Sale{
		{Total: dec("50.00"), PaymentMethod: model.PaymentCash},
	}
	movements := []model.CashMovement{
		{Type: model.MovementExpense, Amount: dec("20.00")},
	}

	s := Compute(dec("100.00"), sales, movements)

	assert.Equal(t, "20", s.TotalMovements.String())
	assert.Equal(t, "130", s.ExpectedAmount.String())
}

func TestComputeCardAndTransferNeverTouchTheDrawer(t *testing.T) {
	sales := []model.Sale{
		{Total: dec("80.00"), PaymentMethod: model.PaymentCard},
		{Total: dec("45.00"), PaymentMethod: model.PaymentTransfer},
	}

	s := Compute(dec("100.00"), sales, nil)

	assert.Equal(t, "80", s.SalesCard.String())
	assert.Equal(t, "45", s.SalesTransfer.String())
	assert.True(t, s.SalesCash.IsZero())
	assert.Equal(t, "100", s.ExpectedAmount.String())
}

func TestComputeMixedSaleSplitsIntoBuckets(t *testing.T) {
	cash, card, transfer := dec("30.00"), dec("15.00"), dec("5.00")
	sales := []model.Sale{
		{
			Total:                 dec("50.00"),
			PaymentMethod:         model.PaymentMixed,
			PaymentCashAmount:     &cash,
			PaymentCardAmount:     &card,
			PaymentTransferAmount: &transfer,
		},
	}

	s := Compute(dec("100.00"), sales, nil)

	assert.Equal(t, "30", s.SalesCash.String())
	assert.Equal(t, "15", s.SalesCard.String())
	assert.Equal(t, "5", s.SalesTransfer.String())
	assert.Equal(t, "130", s.ExpectedAmount.String())
}

func TestComputeRoundsToCents(t *testing.T) {
	sales := []model.Sale{
		{Total: dec("10.005"), PaymentMethod: model.PaymentCash},
	}

	s := Compute(dec("0.00"), sales, nil)

	assert.Equal(t, "10.01", s.SalesCash.String())
	assert.Equal(t, "10.01", s.ExpectedAmount.String())
}

func TestDifference(t *testing.T) {
	// 125 declared against 130 expected: a shortage of 5.
	d := Difference(dec("125.00"), dec("130.00"))
	assert.Equal(t, "-5", d.String())

	// Overage is positive.
	d = Difference(dec("132.00"), dec("130.00"))
	assert.Equal(t, "2", d.String())

	// Exact match.
	d = Difference(dec("130.00"), dec("130.00"))
	assert.True(t, d.IsZero())
}
