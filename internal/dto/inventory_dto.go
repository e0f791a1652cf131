package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateInventoryItemRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=120"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"     validate:"min=0"`
	MinQuantity int     `json:"min_quantity" validate:"min=0"`
	Location    *string `json:"location"`
}

type UpdateInventoryItemRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=2,max=120"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"     validate:"omitempty,min=0"`
	MinQuantity *int    `json:"min_quantity" validate:"omitempty,min=0"`
	Location    *string `json:"location"`
}

// QuantityRequest is the body of POST /api/inventory/:id/add and /remove.
type QuantityRequest struct {
	Quantity int     `json:"quantity" validate:"required"`
	Note     *string `json:"note"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type InventoryFilter struct {
	Name     string `form:"name"`
	LowStock bool   `form:"low_stock"` // only items below min_quantity
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	Location    *string `json:"location"`
}

type InventoryListResponse struct {
	Data  []InventoryItemResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

type InventoryLogResponse struct {
	ID        string  `json:"id"`
	ItemID    string  `json:"item_id"`
	Action    string  `json:"action"`
	Quantity  int     `json:"quantity"`
	ActorID   string  `json:"actor_id"`
	ActorName string  `json:"actor_name,omitempty"`
	Note      *string `json:"note"`
	CreatedAt string  `json:"created_at"`
}
