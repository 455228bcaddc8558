package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func TestNights(t *testing.T) {
	in := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		d    time.Duration
		want int
	}{
		{"zero", 0, 1},
		{"one hour", time.Hour, 1},
		{"23h59m", 23*time.Hour + 59*time.Minute, 1},
		{"exactly 24h", 24 * time.Hour, 1},
		{"24h plus one second", 24*time.Hour + time.Second, 2},
		{"24h01m", 24*time.Hour + time.Minute, 2},
		{"48h", 48 * time.Hour, 2},
		{"negative", -3 * time.Hour, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Nights(in, in.Add(tc.d)))
		})
	}
}

func TestLateCharge(t *testing.T) {
	expected := time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)
	rate := money("7500")
	cases := []struct {
		name string
		late time.Duration
		want string
	}{
		{"on time", 0, "0"},
		{"early", -time.Hour, "0"},
		{"five minutes", 5 * time.Minute, "0"},
		{"exactly 2h", 2 * time.Hour, "0"},
		{"2.01h", 2*time.Hour + 36*time.Second, "1875"},
		{"exactly 6h", 6 * time.Hour, "1875"},
		{"6.01h", 6*time.Hour + 36*time.Second, "3750"},
		{"7h", 7 * time.Hour, "3750"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertMoney(t, tc.want, LateCharge(expected, expected.Add(tc.late), rate))
		})
	}
}

func TestIsLateIsStrict(t *testing.T) {
	expected := time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)
	assert.False(t, IsLate(expected, expected))
	assert.True(t, IsLate(expected, expected.Add(time.Nanosecond)))
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		paid, total string
		want        BillStatus
	}{
		{"0", "10500", StatusUnpaid},
		{"0", "0", StatusUnpaid},
		{"1", "10500", StatusPartiallyPaid},
		{"10499.99", "10500", StatusPartiallyPaid},
		{"10500", "10500", StatusPaid},
		{"11000", "10500", StatusPaid},
		{"500", "0", StatusPaid},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveStatus(money(tc.paid), money(tc.total)), "paid=%s total=%s", tc.paid, tc.total)
	}
}

func TestAdvanceStatus(t *testing.T) {
	assert.Equal(t, StatusPartiallyPaid, AdvanceStatus(money("500"), money("0")))
	assert.Equal(t, StatusUnpaid, AdvanceStatus(money("0"), money("0")))
	assert.Equal(t, StatusPartiallyPaid, AdvanceStatus(money("500"), money("1000")))
	assert.Equal(t, StatusPaid, AdvanceStatus(money("1000"), money("1000")))
}

func TestTotals(t *testing.T) {
	items := []LineItem{
		{Total: money("10000")},
		{Total: money("333.33")},
	}
	sub, tax, total := Totals(items)
	assertMoney(t, "10333.33", sub)
	assertMoney(t, "516.67", tax)
	assertMoney(t, "10850", total)
	assert.True(t, total.Equal(sub.Add(tax)))

	sub, tax, total = Totals(nil)
	assert.True(t, sub.IsZero())
	assert.True(t, tax.IsZero())
	assert.True(t, total.IsZero())
}

func TestEffectiveRate(t *testing.T) {
	room := Room{BasePrice: money("5000")}
	assertMoney(t, "5000", EffectiveRate(Stay{}, room))

	custom := money("4200")
	assertMoney(t, "4200", EffectiveRate(Stay{CustomRate: &custom}, room))
}

func TestRoomLineDescription(t *testing.T) {
	room := Room{Number: "101", CategoryName: "Single Room"}
	assert.Equal(t, "Single Room - Room 101 (1 night)", RoomLineDescription(room, 1, nil))
	assert.Equal(t, "Single Room - Room 101 (3 nights)", RoomLineDescription(room, 3, nil))

	custom := money("4200")
	assert.Equal(t, "Single Room - Room 101 (2 nights) (Custom Rate: 4200.00)", RoomLineDescription(room, 2, &custom))
}

func TestErrorKinds(t *testing.T) {
	err := AlreadyClosed("billing.close", 7)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "billing.close: stay 7: stay already checked out", err.Error())

	nf := NotFound("billing.add_charge", "bill", 3)
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(nf))

	assert.Equal(t, KindInternal, KindOf(assert.AnError))
	assert.ErrorIs(t, wrap("op", assert.AnError), ErrInternal)
	assert.Same(t, nf, wrap("op", nf))
}
