package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReservationReserved   = "RESERVED"
	ReservationCheckedIn  = "CHECKED_IN"
	ReservationCheckedOut = "CHECKED_OUT"
	ReservationCancelled  = "CANCELLED"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	GuestID          uint            `gorm:"index;column:guest_id" json:"guestId"`
	RoomID           uint            `gorm:"index;column:room_id" json:"roomId"`
	CheckInDate      time.Time       `gorm:"column:check_in_date;index" json:"checkInDate"`
	ExpectedCheckOut time.Time       `gorm:"column:expected_check_out" json:"expectedCheckOut"`
	AdvancePayment   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"advancePayment"`
	Status           string          `gorm:"size:20;default:RESERVED;index" json:"status"`
	Notes            string          `gorm:"type:text" json:"notes"`

	Guest Guest `gorm:"foreignKey:GuestID" json:"guest"`
	Room  Room  `gorm:"foreignKey:RoomID" json:"room"`
}

func ValidReservationStatus(status string) bool {
	switch status {
	case ReservationReserved, ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled:
		return true
	}
	return false
}
