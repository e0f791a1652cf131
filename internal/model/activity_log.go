package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only audit record of who did what to which entity.
// Action and EntityType are normalized to upper case before persisting.
// EntityID is nullable — collection-level mutations have no single id.
type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Username   string     `gorm:"not null"`
	Action     string     `gorm:"type:varchar(20);not null;index"`
	EntityType string     `gorm:"type:varchar(40);not null;index"`
	EntityID   *string    `gorm:"index"`
	// Details holds a free-form JSON blob: old/new field diffs, request metadata.
	Details   []byte `gorm:"type:jsonb"`
	IPAddress string `gorm:"type:varchar(45)"`
	CreatedAt time.Time `gorm:"index"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
