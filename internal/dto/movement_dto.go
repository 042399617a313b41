package dto

import "github.com/shopspring/decimal"

type AddMovementRequest struct {
	Type        string          `json:"type"        validate:"required,oneof=supplier_payment expense adjustment withdrawal"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3,max=500"`
	// SupplierName is mandatory for supplier_payment — enforced in the service
	// so the rule lives in the operation contract, not only in binding tags.
	SupplierName    *string `json:"supplier_name"    validate:"omitempty,max=200"`
	ReferenceNumber *string `json:"reference_number" validate:"omitempty,max=100"`
}

type MovementResponse struct {
	ID              string          `json:"id"`
	CashDrawerID    string          `json:"cash_drawer_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	SupplierName    *string         `json:"supplier_name"`
	ReferenceNumber *string         `json:"reference_number"`
	CreatedByName   string          `json:"created_by_name"`
	CreatedAt       string          `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total decimal.Decimal    `json:"total"`
}
