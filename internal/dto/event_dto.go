package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateEventRequest struct {
	Title       string  `json:"title"       validate:"required,min=3,max=160"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	StartsAt    string  `json:"starts_at"   validate:"required"`
	EndsAt      *string `json:"ends_at"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=3,max=160"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	StartsAt    *string `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
	Status      *string `json:"status"      validate:"omitempty,oneof=agendado concluido cancelado"`
}

type RegisterParticipantRequest struct {
	MemberID  string `json:"member_id" validate:"required,uuid"`
	Confirmed bool   `json:"confirmed"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type EventFilter struct {
	Status string `form:"status"` // agendado | concluido | cancelado | all
	From   string `form:"from"`   // YYYY-MM-DD
	To     string `form:"to"`     // YYYY-MM-DD
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EventResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	StartsAt     string  `json:"starts_at"`
	EndsAt       *string `json:"ends_at"`
	Status       string  `json:"status"`
	Participants int     `json:"participants"`
}

type EventListResponse struct {
	Data  []EventResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ParticipantResponse struct {
	ID         string `json:"id"`
	EventID    string `json:"event_id"`
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name,omitempty"`
	Confirmed  bool   `json:"confirmed"`
	CreatedAt  string `json:"created_at"`
}
