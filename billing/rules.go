package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// GracePeriod is how late a guest may check out before a charge applies.
	GracePeriod = 2 * time.Hour
	// ShortLateLimit bounds the 25% late-checkout tier.
	ShortLateLimit = 6 * time.Hour

	day = 24 * time.Hour
)

var (
	// TaxRate is the flat rate applied to every bill subtotal.
	TaxRate = decimal.RequireFromString("0.05")

	shortLateFactor = decimal.RequireFromString("0.25")
	longLateFactor  = decimal.RequireFromString("0.5")
)

// Nights bills every started 24h period, and never less than one night.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 1
	}
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// IsLate compares full timestamps, not dates.
func IsLate(expected, actual time.Time) bool {
	return actual.After(expected)
}

// LateCharge returns the late-checkout surcharge for a nightly rate.
func LateCharge(expected, actual time.Time, rate decimal.Decimal) decimal.Decimal {
	late := actual.Sub(expected)
	switch {
	case late <= GracePeriod:
		return decimal.Zero
	case late <= ShortLateLimit:
		return rate.Mul(shortLateFactor)
	default:
		return rate.Mul(longLateFactor)
	}
}

// EffectiveRate prefers the rate fixed at check-in over the category's current base price.
func EffectiveRate(stay Stay, room Room) decimal.Decimal {
	if stay.CustomRate != nil {
		return *stay.CustomRate
	}
	return room.BasePrice
}

// Totals sums the line items and applies tax rounded to cents.
func Totals(items []LineItem) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	tax = subtotal.Mul(TaxRate).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

func TotalPaid(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// DeriveStatus decides a bill status from what was paid against its total.
func DeriveStatus(totalPaid, total decimal.Decimal) BillStatus {
	switch {
	case !totalPaid.IsPositive():
		return StatusUnpaid
	case totalPaid.LessThan(total):
		return StatusPartiallyPaid
	default:
		return StatusPaid
	}
}

// AdvanceStatus is used when a bill is opened with an advance. Money taken
// before any charge exists leaves the bill partially paid.
func AdvanceStatus(totalPaid, total decimal.Decimal) BillStatus {
	if totalPaid.IsPositive() && total.IsZero() {
		return StatusPartiallyPaid
	}
	return DeriveStatus(totalPaid, total)
}

func RoomLineDescription(room Room, nights int, customRate *decimal.Decimal) string {
	plural := ""
	if nights > 1 {
		plural = "s"
	}
	desc := fmt.Sprintf("%s - Room %s (%d night%s)", room.CategoryName, room.Number, nights, plural)
	if customRate != nil {
		desc += fmt.Sprintf(" (Custom Rate: %s)", customRate.StringFixed(2))
	}
	return desc
}

const LateCheckoutDescription = "Late Checkout Charges"
