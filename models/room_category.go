package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomCategory carries the nightly base price of its rooms.
type RoomCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"uniqueIndex;size:100" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"basePrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
