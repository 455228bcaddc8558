package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index;column:user_id" json:"userId"`
	Action     string         `gorm:"size:64;index" json:"action"`
	EntityType string         `gorm:"size:64;index" json:"entityType"`
	EntityID   uint           `gorm:"column:entity_id" json:"entityId"`
	OldValue   datatypes.JSON `json:"oldValue,omitempty"`
	NewValue   datatypes.JSON `json:"newValue,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}
