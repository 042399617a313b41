package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Drawer lifecycle states. A drawer is created open and transitions exactly
// once to closed; closed is terminal (never reopened, never deleted).
const (
	DrawerStatusOpen   = "open"
	DrawerStatusClosed = "closed"
)

// CashDrawer represents one register session from open to close.
// At most one row may have status=open at any time — guarded by the partial
// unique index ux_cash_drawers_open (see infra schema patches).
type CashDrawer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperatorName  string          `gorm:"type:varchar(100);not null"`
	OpeningAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ClosingAmount, ExpectedAmount and Difference are frozen at close time
	// and remain NULL while the drawer is open.
	ClosingAmount  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpectedAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Difference     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status         string           `gorm:"type:varchar(20);not null;default:'open';index"`
	Notes          *string          `gorm:"type:varchar(1000)"`
	OpenedAt       time.Time
	ClosedAt       *time.Time

	Movements []CashMovement `gorm:"foreignKey:CashDrawerID"`
	Sales     []Sale         `gorm:"foreignKey:CashDrawerID"`
}
