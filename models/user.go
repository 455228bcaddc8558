package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin      = "ADMIN"
	RoleAccountant = "ACCOUNTANT"
	RoleFrontDesk  = "FRONTDESK"
)

// User is a back-office account. Password holds the bcrypt hash.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Password string `gorm:"size:255" json:"-"`
	Name     string `gorm:"size:255" json:"name"`
	Role     string `gorm:"size:32;default:FRONTDESK;index" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	ResetToken        *string    `gorm:"size:128;index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAccountant, RoleFrontDesk:
		return true
	}
	return false
}
