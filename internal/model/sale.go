package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentMixed    = "mixed"
)

// Sale is created exactly once, inside the same transaction that decrements
// stock, and is immutable thereafter (no update or delete path).
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketNumber int             `gorm:"uniqueIndex;not null"`
	CashDrawerID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string         `gorm:"type:varchar(20);not null"`
	// Split amounts are populated only for mixed payments; for single-method
	// sales they stay NULL and the method alone determines the bucket.
	PaymentCashAmount     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PaymentCardAmount     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PaymentTransferAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Items                 []SaleItem       `gorm:"foreignKey:SaleID"`
	CreatedAt             time.Time
}

// SaleItem snapshots the product name and unit price at sale time, so later
// catalog edits never rewrite history.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentMixed:
		return true
	}
	return false
}
