package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateVehicleRequest struct {
	MemberID     string `json:"member_id"    validate:"required,uuid"`
	Plate        string `json:"plate"        validate:"required,min=6,max=10"`
	Brand        string `json:"brand"        validate:"required,min=2,max=60"`
	Model        string `json:"model"        validate:"required,min=1,max=60"`
	Year         int    `json:"year"         validate:"required,min=1900,max=2100"`
	Displacement *int   `json:"displacement" validate:"omitempty,min=50"`
}

type UpdateVehicleRequest struct {
	Plate        *string `json:"plate"        validate:"omitempty,min=6,max=10"`
	Brand        *string `json:"brand"        validate:"omitempty,min=2,max=60"`
	Model        *string `json:"model"        validate:"omitempty,min=1,max=60"`
	Year         *int    `json:"year"         validate:"omitempty,min=1900,max=2100"`
	Displacement *int    `json:"displacement" validate:"omitempty,min=50"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type VehicleFilter struct {
	MemberID string `form:"member_id"`
	Plate    string `form:"plate"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VehicleResponse struct {
	ID           string  `json:"id"`
	MemberID     string  `json:"member_id"`
	MemberName   string  `json:"member_name,omitempty"`
	Plate        string  `json:"plate"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Displacement *int    `json:"displacement"`
}

type VehicleListResponse struct {
	Data  []VehicleResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
