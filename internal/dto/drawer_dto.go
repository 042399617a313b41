package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenDrawerRequest struct {
	OperatorName  string          `json:"operator_name"  validate:"required,min=2,max=100"`
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
}

type CloseDrawerRequest struct {
	ClosingAmount decimal.Decimal `json:"closing_amount" validate:"min=0"`
	Notes         *string         `json:"notes"          validate:"omitempty,max=1000"`
}

// DrawerHistoryFilter is bound from the query string of GET /v1/drawers.
type DrawerHistoryFilter struct {
	Operator string `form:"operator"`
	Status   string `form:"status"` // open | closed | all
	DateFrom string `form:"date_from"` // YYYY-MM-DD
	DateTo   string `form:"date_to"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DrawerResponse struct {
	ID             string           `json:"id"`
	OperatorName   string           `json:"operator_name"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	ClosingAmount  *decimal.Decimal `json:"closing_amount"`
	ExpectedAmount *decimal.Decimal `json:"expected_amount"`
	Difference     *decimal.Decimal `json:"difference"`
	Status         string           `json:"status"`
	Notes          *string          `json:"notes"`
	OpenedAt       string           `json:"opened_at"`
	ClosedAt       *string          `json:"closed_at"`
}

// CloseDrawerResponse reports the frozen reconciliation of a just-closed drawer.
type CloseDrawerResponse struct {
	DrawerID       string          `json:"drawer_id"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	ClosingAmount  decimal.Decimal `json:"closing_amount"`
	Difference     decimal.Decimal `json:"difference"`
	Status         string          `json:"status"`
}

// DrawerSummaryResponse is the live (or frozen, once closed) cash position.
type DrawerSummaryResponse struct {
	DrawerID       string          `json:"drawer_id"`
	OperatorName   string          `json:"operator_name"`
	Status         string          `json:"status"`
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	SalesCash      decimal.Decimal `json:"sales_cash"`
	SalesCard      decimal.Decimal `json:"sales_card"`
	SalesTransfer  decimal.Decimal `json:"sales_transfer"`
	SalesCount     int             `json:"sales_count"`
	TotalMovements decimal.Decimal `json:"total_movements"`
	MovementsCount int             `json:"movements_count"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
}

type DrawerListResponse struct {
	Data  []DrawerResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
