package models

import "time"

// HotelSetting is the single row printed on invoice headers.
type HotelSetting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255" json:"name"`
	Address       string    `gorm:"type:text" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	Email         string    `gorm:"size:150" json:"email"`
	Website       string    `gorm:"size:255" json:"website"`
	Logo          string    `gorm:"size:255" json:"logo"`
	TaxNumber     string    `gorm:"size:64" json:"taxNumber"`
	Currency      string    `gorm:"size:8;default:PKR" json:"currency"`
	InvoiceFooter string    `gorm:"type:text" json:"invoiceFooter"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
