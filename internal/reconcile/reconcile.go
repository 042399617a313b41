// Package reconcile derives the expected-cash position of a drawer from its
// opening amount, its sales and its manual outflows. The computation is pure
// and repeatable: callers decide whether the inputs come from a best-effort
// snapshot (live summary) or from the same transaction that closes the drawer
// (frozen expected amount).
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/money"
)

// Summary is the expected-vs-recorded cash position of a drawer.
type Summary struct {
	OpeningAmount  decimal.Decimal
	SalesCash      decimal.Decimal
	SalesCard      decimal.Decimal
	SalesTransfer  decimal.Decimal
	SalesCount     int
	TotalMovements decimal.Decimal
	MovementsCount int
	// ExpectedAmount = round(opening + salesCash − movements). Card and
	// transfer portions never touch the physical drawer.
	ExpectedAmount decimal.Decimal
}

// Compute aggregates sales per payment method and movements into a Summary.
// Mixed-payment sales contribute each split portion to its own bucket; only
// the cash portion affects the drawer.
func Compute(opening decimal.Decimal, sales []model.Sale, movements []model.CashMovement) Summary {
	s := Summary{
		OpeningAmount: money.Round(opening),
		SalesCash:     decimal.Zero,
		SalesCard:     decimal.Zero,
		SalesTransfer: decimal.Zero,
		SalesCount:    len(sales),
	}

	for _, sale := range sales {
		cash, card, transfer := splitByMethod(&sale)
		s.SalesCash = s.SalesCash.Add(cash)
		s.SalesCard = s.SalesCard.Add(card)
		s.SalesTransfer = s.SalesTransfer.Add(transfer)
	}

	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Amount)
	}
	s.TotalMovements = money.Round(total)
	s.MovementsCount = len(movements)

	s.SalesCash = money.Round(s.SalesCash)
	s.SalesCard = money.Round(s.SalesCard)
	s.SalesTransfer = money.Round(s.SalesTransfer)
	s.ExpectedAmount = money.Round(s.OpeningAmount.Add(s.SalesCash).Sub(s.TotalMovements))
	return s
}

// Difference returns closing − expected. Negative means a shortage.
func Difference(closing, expected decimal.Decimal) decimal.Decimal {
	return money.Round(closing.Sub(expected))
}

func splitByMethod(sale *model.Sale) (cash, card, transfer decimal.Decimal) {
	cash, card, transfer = decimal.Zero, decimal.Zero, decimal.Zero
	switch sale.PaymentMethod {
	case model.PaymentCash:
		cash = sale.Total
	case model.PaymentCard:
		card = sale.Total
	case model.PaymentTransfer:
		transfer = sale.Total
	case model.PaymentMixed:
		if sale.PaymentCashAmount != nil {
			cash = *sale.PaymentCashAmount
		}
		if sale.PaymentCardAmount != nil {
			card = *sale.PaymentCardAmount
		}
		if sale.PaymentTransferAmount != nil {
			transfer = *sale.PaymentTransferAmount
		}
	}
	return cash, card, transfer
}
