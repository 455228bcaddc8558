package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is derived from the bill total and the payments recorded against it.
type BillStatus string

const (
	StatusUnpaid        BillStatus = "UNPAID"
	StatusPartiallyPaid BillStatus = "PARTIALLY_PAID"
	StatusPaid          BillStatus = "PAID"
)

type ItemType string

const (
	ItemRoom    ItemType = "ROOM"
	ItemFood    ItemType = "FOOD"
	ItemService ItemType = "SERVICE"
	ItemOther   ItemType = "OTHER"
)

const (
	MethodCash         = "CASH"
	MethodCard         = "CARD"
	MethodBankTransfer = "BANK_TRANSFER"
	MethodOnline       = "ONLINE"
	MethodOther        = "OTHER"
)

// Stay is one guest's occupancy of one room between check-in and check-out.
type Stay struct {
	ID               uint
	GuestID          uint
	RoomID           uint
	ReservationID    *uint
	CheckInAt        time.Time
	ExpectedCheckOut time.Time
	ActualCheckOut   *time.Time
	CustomRate       *decimal.Decimal
	LateCheckout     bool
	LateCharges      decimal.Decimal
}

func (s Stay) Closed() bool { return s.ActualCheckOut != nil }

// StayCheckout holds the fields written once when a stay is closed.
type StayCheckout struct {
	ActualCheckOut time.Time
	LateCheckout   bool
	LateCharges    decimal.Decimal
}

// Room carries what the engine needs to price a stay.
type Room struct {
	ID           uint
	Number       string
	CategoryName string
	BasePrice    decimal.Decimal
}

type Bill struct {
	ID        uint
	Number    string
	GuestID   uint
	StayID    *uint
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Status    BillStatus
	CreatedAt time.Time

	Items    []LineItem
	Payments []Payment
}

type LineItem struct {
	ID          uint
	BillID      uint
	Type        ItemType
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	RoomID      *uint
	FoodID      *uint
	ServiceID   *uint
	CreatedAt   time.Time
}

type Payment struct {
	ID     uint
	BillID uint
	Amount decimal.Decimal
	Method string
	Note   string
	PaidAt time.Time
}

// CloseResult is returned by Engine.Close.
type CloseResult struct {
	Stay Stay
	Bill Bill
}

// PaymentResult is returned by Engine.RecordPayment.
type PaymentResult struct {
	Payment   Payment
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
	Status    BillStatus
}
