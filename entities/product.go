package entities

import (
	"github.com/google/uuid"
)

// Product is a soft-keyed catalog entry: names are user-entered free text and
// deduplicated case-insensitively via a unique index on LOWER(name).
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Unit     string    `json:"unit,omitempty"`

	Timestamp
}
