package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BarProduct is a sellable item behind the club bar.
type BarProduct struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"index;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	MinStock  int             `gorm:"not null;default:5"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BarProduct) TableName() string { return "bar_products" }

// Sale is a bar point-of-sale transaction.
// PaymentMethod: "dinheiro" | "pix" | "debito" | "credito" | "fiado"
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	OperatorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Notes         *string
	CreatedAt     time.Time `gorm:"index"`

	Items    []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Operator *User      `gorm:"foreignKey:OperatorID"`
}

func (Sale) TableName() string { return "bar_sales" }

// SaleItem is one line of a sale. Items exist only as part of their sale and
// are removed by the FK cascade when the sale is deleted.
type SaleItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *BarProduct `gorm:"foreignKey:ProductID"`
}

func (SaleItem) TableName() string { return "bar_sale_items" }
