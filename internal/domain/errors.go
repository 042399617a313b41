// Package domain defines the error taxonomy of the cash-drawer core.
// Services return these errors; the HTTP layer maps them to status codes.
// Invariant violations and conflicts are surfaced verbatim — never retried.
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrDrawerAlreadyOpen: a drawer with status=open already exists.
	// Enforced by the partial unique index on cash_drawers, so two
	// concurrent Open calls resolve to exactly one winner.
	ErrDrawerAlreadyOpen = errors.New("a cash drawer is already open")

	// ErrNoOpenDrawer: the operation requires an open drawer and none exists.
	ErrNoOpenDrawer = errors.New("no open cash drawer")

	// ErrDrawerClosed: the target drawer was already closed; closed drawers
	// are immutable history.
	ErrDrawerClosed = errors.New("cash drawer is closed")

	// ErrNotFound: the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrProductInactive: inactive products cannot be sold.
	ErrProductInactive = errors.New("product is inactive")
)

// ValidationError is a pre-write input rejection. Field and Reason give the
// caller enough detail to correct the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ProductNotFoundError identifies the exact line item that failed.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError reports requested vs available so the caller can
// show precisely which line item cannot be fulfilled. It is also returned
// when a concurrent sale wins the race for the last units: the conditional
// stock decrement touches no rows and the whole transaction rolls back.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available:%d, requested:%d",
		e.ProductName, e.Available, e.Requested)
}

// AmountMismatchError is raised before any write when the declared total
// does not close against the line items (or the mixed-payment split).
type AmountMismatchError struct {
	Declared decimal.Decimal
	Computed decimal.Decimal
	Detail   string
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount mismatch (%s): declared %s, computed %s",
		e.Detail, e.Declared.StringFixed(2), e.Computed.StringFixed(2))
}
