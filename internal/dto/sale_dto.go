package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// PaymentDetails carries the split of a mixed payment. Required iff
// payment_method = mixed; the three portions must sum to the sale total.
type PaymentDetails struct {
	CashAmount     decimal.Decimal `json:"cash_amount"     validate:"min=0"`
	CardAmount     decimal.Decimal `json:"card_amount"     validate:"min=0"`
	TransferAmount decimal.Decimal `json:"transfer_amount" validate:"min=0"`
}

type ProcessSaleRequest struct {
	Items          []SaleItemRequest `json:"items"           validate:"required,min=1,dive"`
	Total          decimal.Decimal   `json:"total"           validate:"min=0"`
	PaymentMethod  string            `json:"payment_method"  validate:"required,oneof=cash card transfer mixed"`
	PaymentDetails *PaymentDetails   `json:"payment_details" validate:"omitempty"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	DrawerID string `form:"drawer_id" validate:"omitempty,uuid"`
	Date     string `form:"date"` // YYYY-MM-DD; empty = today
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID             string             `json:"id"`
	TicketNumber   int                `json:"ticket_number"`
	CashDrawerID   string             `json:"cash_drawer_id"`
	Items          []SaleItemResponse `json:"items"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentDetails *PaymentDetails    `json:"payment_details"`
	CreatedAt      string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
