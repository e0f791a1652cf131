package dto

import "github.com/shopspring/decimal"

// ─── Bar product DTOs ────────────────────────────────────────────────────────

type CreateBarProductRequest struct {
	Name     string          `json:"name"      validate:"required,min=2,max=120"`
	Price    decimal.Decimal `json:"price"     validate:"required"`
	Stock    int             `json:"stock"     validate:"min=0"`
	MinStock int             `json:"min_stock" validate:"min=0"`
}

type UpdateBarProductRequest struct {
	Name     *string          `json:"name"      validate:"omitempty,min=2,max=120"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"     validate:"omitempty,min=0"`
	MinStock *int             `json:"min_stock" validate:"omitempty,min=0"`
}

type BarProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"min_stock"`
	Active   bool            `json:"active"`
}

// ─── Sale DTOs ───────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID  string          `json:"product_id"  validate:"required,uuid"`
	Quantity   int             `json:"quantity"    validate:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unit_price"  validate:"required"`
	TotalPrice decimal.Decimal `json:"total_price" validate:"required"`
}

type CreateSaleRequest struct {
	TotalAmount   decimal.Decimal   `json:"total_amount"   validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=dinheiro pix debito credito fiado"`
	Notes         *string           `json:"notes"`
	// Emptiness is checked by the service, which answers 400 rather than
	// the tag-validation 422.
	Items []SaleItemRequest `json:"items" validate:"dive"`
}

// UpdateSaleRequest replaces only the mutable header fields — line items are
// immutable after creation.
type UpdateSaleRequest struct {
	PaymentMethod *string `json:"payment_method" validate:"omitempty,oneof=dinheiro pix debito credito fiado"`
	Notes         *string `json:"notes"`
}

// SaleFilter is bound from the query string of GET /api/bar/sales.
type SaleFilter struct {
	Date          string `form:"date"` // YYYY-MM-DD; empty = all
	PaymentMethod string `form:"payment_method"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Product    string          `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	OperatorID    string             `json:"operator_id"`
	OperatorName  string             `json:"operator_name,omitempty"`
	Notes         *string            `json:"notes"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
