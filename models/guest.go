package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name string `gorm:"size:255;index" json:"name"`

	// unique when present; nil keeps several guests without documents apart
	CNIC     *string `gorm:"column:cnic;size:32;uniqueIndex" json:"cnic"`
	Passport *string `gorm:"size:32;uniqueIndex" json:"passport"`

	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	Address string `gorm:"type:text" json:"address"`
}
