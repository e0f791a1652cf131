package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is a club ride, meeting or party.
// Status: "agendado" | "concluido" | "cancelado"
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Description *string
	Location    *string
	StartsAt    time.Time `gorm:"not null;index"`
	EndsAt      *time.Time
	Status      string `gorm:"type:varchar(20);not null;default:'agendado'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Participants []EventParticipant `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// EventParticipant links a member to an event. The composite unique index is
// what actually prevents duplicate registrations — the service pre-check only
// exists to produce a friendly message.
type EventParticipant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_event_member;not null"`
	MemberID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_event_member;not null"`
	Confirmed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time

	Event  *Event  `gorm:"foreignKey:EventID"`
	Member *Member `gorm:"foreignKey:MemberID"`
}
