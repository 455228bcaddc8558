package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BillNumber string `gorm:"uniqueIndex;size:64" json:"billNumber"`
	GuestID    uint   `gorm:"index;column:guest_id" json:"guestId"`
	StayID     *uint  `gorm:"index;column:stay_id" json:"stayId"`

	Subtotal decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"tax"`
	Total    decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"total"`
	Status   string          `gorm:"size:20;default:UNPAID;index" json:"status"`

	GeneratedAt time.Time `gorm:"index" json:"generatedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Guest    Guest      `gorm:"foreignKey:GuestID" json:"guest"`
	Stay     *Stay      `gorm:"foreignKey:StayID" json:"stay,omitempty"`
	Items    []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
	Payments []Payment  `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"payments"`
}

type BillItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BillID uint `gorm:"index;column:bill_id" json:"billId"`

	Type        string          `gorm:"size:20;index" json:"type"`
	Description string          `gorm:"size:255" json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitPrice"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2)" json:"total"`

	RoomID    *uint `gorm:"column:room_id" json:"roomId"`
	FoodID    *uint `gorm:"column:food_id" json:"foodId"`
	ServiceID *uint `gorm:"column:service_id" json:"serviceId"`

	CreatedAt time.Time `json:"createdAt"`

	Food    *FoodMenuItem `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Service *ExtraService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

type Payment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BillID uint `gorm:"index;column:bill_id" json:"billId"`

	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaymentMethod string          `gorm:"size:20" json:"paymentMethod"`
	Notes         string          `gorm:"type:text" json:"notes"`
	PaidAt        time.Time       `gorm:"index" json:"paidAt"`
}
