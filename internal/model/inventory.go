package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a trackable club asset (merch, consumables, gear).
type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Quantity    int `gorm:"not null;default:0"`
	MinQuantity int `gorm:"not null;default:0"`
	Location    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (InventoryItem) TableName() string { return "inventory" }

// InventoryLog registers every quantity change of an inventory item.
// Action: "create" | "add" | "remove" | "delete"
// Rows are append-only — never modified or deleted by the application.
type InventoryLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(10);not null"`
	Quantity  int       `gorm:"not null"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	Note      *string
	CreatedAt time.Time

	// No FK back to the item: ledger rows outlive deleted items.
	Actor *User `gorm:"foreignKey:ActorID"`
}

func (InventoryLog) TableName() string { return "inventory_logs" }
