package entities

import (
	"github.com/google/uuid"
	"time"
)

type Receipt struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StoreName   string    `json:"store_name"`
	Date        time.Time `gorm:"type:date" json:"date"`
	TotalAmount float64   `json:"total_amount"`
	PhotoURL    string    `json:"photo_url,omitempty"`

	User  *User          `gorm:"foreignKey:UserID"`
	Items []*ReceiptItem `gorm:"foreignKey:ReceiptID"`
	Timestamp
}

type ReceiptItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReceiptID uuid.UUID `json:"receipt_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	PriceUnit float64   `json:"price_unit"`

	Receipt *Receipt `gorm:"foreignKey:ReceiptID"`
	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}
