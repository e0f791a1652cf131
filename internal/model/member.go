package model

import (
	"time"

	"github.com/google/uuid"
)

// Member is a registered club member.
// Status: "ativo" | "inativo" | "licenciado"
type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Nickname  *string
	CPF       string `gorm:"column:cpf;uniqueIndex;not null"`
	Email     *string
	Phone     *string
	BloodType *string   `gorm:"type:varchar(3)"`
	JoinDate  time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'ativo'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Vehicles []Vehicle `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}

// Vehicle is a motorcycle owned by a member.
type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemberID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Plate        string    `gorm:"uniqueIndex;not null"`
	Brand        string    `gorm:"not null"`
	Model        string    `gorm:"not null"`
	Year         int       `gorm:"not null"`
	Displacement *int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Member *Member `gorm:"foreignKey:MemberID"`
}
