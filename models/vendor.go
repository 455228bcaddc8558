package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	VendorBillReceived = "BILL_RECEIVED"
	VendorPaymentMade  = "PAYMENT_MADE"

	VendorUnpaid = "UNPAID"
	VendorPaid   = "PAID"
)

type Vendor struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:255;index" json:"name"`
	ContactPerson string `gorm:"size:255" json:"contactPerson"`
	Phone         string `gorm:"size:50" json:"phone"`
	Email         string `gorm:"size:150" json:"email"`
	Address       string `gorm:"type:text" json:"address"`
	Services      string `gorm:"type:text" json:"services"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// filled by the vendor listing, not stored
	TransactionCount int64 `gorm:"-" json:"transactionCount"`
}

type VendorTransaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	VendorID      uint            `gorm:"index;column:vendor_id" json:"vendorId"`
	Type          string          `gorm:"size:20;index" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Description   string          `gorm:"type:text" json:"description"`
	PaymentStatus string          `gorm:"size:20;index" json:"paymentStatus"`
	Date          time.Time       `gorm:"index" json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`

	Vendor Vendor `gorm:"foreignKey:VendorID" json:"vendor"`
}

type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Category    string          `gorm:"size:100;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Description string          `gorm:"type:text" json:"description"`
	Date        time.Time       `gorm:"index" json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}
