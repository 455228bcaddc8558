package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FoodCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type FoodMenuItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:150;index" json:"name"`
	CategoryID uint            `gorm:"index;column:category_id" json:"categoryId"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Available  bool            `gorm:"default:true" json:"available"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	Category FoodCategory `gorm:"foreignKey:CategoryID" json:"category"`
}

// ExtraService is a billable add-on such as laundry or an airport transfer.
type ExtraService struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:150;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Available   bool            `gorm:"default:true" json:"available"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
