package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Manual cash outflow types.
const (
	MovementSupplierPayment = "supplier_payment"
	MovementExpense         = "expense"
	MovementAdjustment      = "adjustment"
	MovementWithdrawal      = "withdrawal"
)

// CashMovement is a manual cash outflow recorded against the open drawer.
// Movements may be deleted while their drawer is still open; once the drawer
// closes the ledger is immutable history.
type CashMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashDrawerID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type         string          `gorm:"type:varchar(30);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description  string          `gorm:"type:varchar(500);not null"`
	// SupplierName is required when Type = supplier_payment.
	SupplierName    *string `gorm:"type:varchar(200)"`
	ReferenceNumber *string `gorm:"type:varchar(100)"`
	CreatedByName   string  `gorm:"type:varchar(100);not null"`
	CreatedAt       time.Time
}

// ValidMovementType reports whether t is one of the accepted outflow types.
func ValidMovementType(t string) bool {
	switch t {
	case MovementSupplierPayment, MovementExpense, MovementAdjustment, MovementWithdrawal:
		return true
	}
	return false
}
