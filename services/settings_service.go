package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

type SettingsInput struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website"`
	Logo          string `json:"logo"`
	TaxNumber     string `json:"taxNumber"`
	Currency      string `json:"currency"`
	InvoiceFooter string `json:"invoiceFooter"`
}

// Get returns the hotel row, or defaults when none has been saved yet.
func (s *SettingsService) Get(ctx context.Context) (models.HotelSetting, error) {
	var hotel models.HotelSetting
	if err := s.DB.WithContext(ctx).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.HotelSetting{Currency: "PKR"}, nil
		}
		return hotel, billing.Internal("settings.get", err)
	}
	return hotel, nil
}

// Update upserts the single settings row.
func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (models.HotelSetting, models.HotelSetting, error) {
	const op = "settings.update"
	if strings.TrimSpace(in.Name) == "" {
		return models.HotelSetting{}, models.HotelSetting{}, billing.Validation(op, "hotel name is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "PKR"
	}

	var hotel models.HotelSetting
	err := s.DB.WithContext(ctx).First(&hotel).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return hotel, hotel, billing.Internal(op, err)
	}
	old := hotel

	hotel.Name = strings.TrimSpace(in.Name)
	hotel.Address = in.Address
	hotel.Phone = in.Phone
	hotel.Email = in.Email
	hotel.Website = in.Website
	hotel.Logo = in.Logo
	hotel.TaxNumber = in.TaxNumber
	hotel.Currency = currency
	hotel.InvoiceFooter = in.InvoiceFooter

	if err := s.DB.WithContext(ctx).Save(&hotel).Error; err != nil {
		return old, hotel, billing.Internal(op, err)
	}
	return old, hotel, nil
}
