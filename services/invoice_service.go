package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"hotel-backoffice/billing"
	"hotel-backoffice/utils"
)

// InvoiceService mails a bill to its guest.
type InvoiceService struct {
	Bills    *BillService
	Settings *SettingsService
	Mailer   *utils.Mailer
}

func NewInvoiceService(bills *BillService, settings *SettingsService, mailer *utils.Mailer) *InvoiceService {
	return &InvoiceService{Bills: bills, Settings: settings, Mailer: mailer}
}

// Send emails the invoice to to, or to the guest address when to is empty.
// It returns the address used.
func (s *InvoiceService) Send(ctx context.Context, billID uint, to string) (string, error) {
	const op = "invoices.send"
	bill, err := s.Bills.Get(ctx, billID)
	if err != nil {
		return "", err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		to = strings.TrimSpace(bill.Guest.Email)
	}
	if to == "" {
		return "", billing.Validation(op, "guest has no email address")
	}
	hotel, err := s.Settings.Get(ctx)
	if err != nil {
		return "", err
	}

	inv := utils.InvoiceEmail{
		HotelName:  hotel.Name,
		Currency:   hotel.Currency,
		BillNumber: bill.BillNumber,
		GuestName:  bill.Guest.Name,
		Subtotal:   bill.Subtotal.StringFixed(2),
		Tax:        bill.Tax.StringFixed(2),
		Total:      bill.Total.StringFixed(2),
		Footer:     hotel.InvoiceFooter,
	}
	paid := decimal.Zero
	for _, p := range bill.Payments {
		paid = paid.Add(p.Amount)
	}
	inv.Paid = paid.StringFixed(2)
	inv.Remaining = bill.Total.Sub(paid).StringFixed(2)
	for _, it := range bill.Items {
		inv.Lines = append(inv.Lines, utils.InvoiceLine{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Total:       it.Total.StringFixed(2),
		})
	}
	if err := s.Mailer.SendInvoice(to, inv); err != nil {
		return "", billing.Internal(op, err)
	}
	return to, nil
}
