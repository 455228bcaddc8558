package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stay is a check-in record; it is closed once ActualCheckOut is set.
type Stay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID *uint `gorm:"index;column:reservation_id" json:"reservationId"`
	GuestID       uint  `gorm:"index;column:guest_id" json:"guestId"`
	RoomID        uint  `gorm:"index;column:room_id" json:"roomId"`

	CheckInAt        time.Time           `gorm:"column:check_in_at;index" json:"checkInAt"`
	ExpectedCheckOut time.Time           `gorm:"column:expected_check_out" json:"expectedCheckOut"`
	ActualCheckOut   *time.Time          `gorm:"column:actual_check_out;index" json:"actualCheckOut"`
	CustomRate       decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"customRate"`
	LateCheckout     bool                `gorm:"default:false" json:"lateCheckout"`
	LateCharges      decimal.Decimal     `gorm:"type:decimal(12,2);default:0" json:"lateCharges"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Guest       Guest        `gorm:"foreignKey:GuestID" json:"guest"`
	Room        Room         `gorm:"foreignKey:RoomID" json:"room"`
	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Bills       []Bill       `gorm:"foreignKey:StayID" json:"bills,omitempty"`
}
