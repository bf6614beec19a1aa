package entities

import (
	"github.com/google/uuid"
)

type Plan struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Features string    `gorm:"type:text" json:"features"`
	IsActive bool      `json:"is_active"`

	Timestamp
}

type Subscription struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	PlanID  uuid.UUID `json:"plan_id"`
	Status  string    `json:"status"` // Pending, Active, Trial, Cancelled
	OrderID string    `json:"order_id,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Plan *Plan `gorm:"foreignKey:PlanID"`
	Timestamp
}
