package dto

import "encoding/json"

// ActivityLogFilter is bound from the query string of GET /api/activity-logs.
// Filters combine with AND semantics; results are ordered newest first.
type ActivityLogFilter struct {
	UserID     string `form:"user_id"     validate:"omitempty,uuid"`
	Action     string `form:"action"`
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	FromDate   string `form:"from_date"` // YYYY-MM-DD
	ToDate     string `form:"to_date"`   // YYYY-MM-DD
	Limit      int    `form:"limit,default=50"  validate:"min=1,max=500"`
	Offset     int    `form:"offset,default=0"  validate:"min=0"`
}

type ActivityLogResponse struct {
	ID         string          `json:"id"`
	UserID     *string         `json:"user_id"`
	Username   string          `json:"username"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *string         `json:"entity_id"`
	Details    json.RawMessage `json:"details"`
	IPAddress  string          `json:"ip_address"`
	CreatedAt  string          `json:"created_at"`
}

type ActivityLogListResponse struct {
	Data   []ActivityLogResponse `json:"data"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
