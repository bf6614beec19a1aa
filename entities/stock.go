package entities

import (
	"github.com/google/uuid"
)

// StockItem holds at most one row per (user, product). Quantity never goes
// below zero: increments are atomic adds, decrements are clamped in SQL.
type StockItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_stock_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_stock_user_product" json:"product_id"`
	Quantity  float64   `json:"quantity"`
	Threshold float64   `json:"threshold"`

	User    *User    `gorm:"foreignKey:UserID"`
	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}
