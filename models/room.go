package models

import (
	"gorm.io/gorm"
)

const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomBooked      = "BOOKED"
	RoomCleaning    = "CLEANING"
	RoomMaintenance = "MAINTENANCE"
)

var RoomStatuses = []string{RoomAvailable, RoomOccupied, RoomBooked, RoomCleaning, RoomMaintenance}

type Room struct {
	gorm.Model

	RoomNumber  string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	CategoryID  uint   `json:"categoryId" gorm:"column:category_id;index"`
	Floor       int    `json:"floor"`
	Status      string `json:"status" gorm:"size:20;default:AVAILABLE;index"`
	Description string `json:"description" gorm:"type:text"`

	Category RoomCategory `gorm:"foreignKey:CategoryID" json:"category"`
}

func ValidRoomStatus(status string) bool {
	for _, s := range RoomStatuses {
		if s == status {
			return true
		}
	}
	return false
}
