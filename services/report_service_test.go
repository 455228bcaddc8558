package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backoffice/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	bills := []models.Bill{
		{
			Total: dec("10500"),
			Items: []models.BillItem{
				{Type: "ROOM", Total: dec("10000")},
			},
			Payments: []models.Payment{{Amount: dec("5000")}, {Amount: dec("5500")}},
		},
		{
			Total: dec("1365"),
			Items: []models.BillItem{
				{Type: "FOOD", Total: dec("800")},
				{Type: "SERVICE", Total: dec("500")},
			},
		},
	}
	r := summarize(bills)

	assert.Equal(t, 2, r.BillCount)
	assert.True(t, r.TotalRevenue.Equal(dec("11865")))
	assert.True(t, r.TotalPaid.Equal(dec("10500")))
	assert.True(t, r.Pending.Equal(dec("1365")))
	assert.True(t, r.Breakdown.Room.Equal(dec("10000")))
	assert.True(t, r.Breakdown.Food.Equal(dec("800")))
	assert.True(t, r.Breakdown.Service.Equal(dec("500")))
	assert.True(t, r.Breakdown.Other.IsZero())
}

func TestSummarizeEmpty(t *testing.T) {
	r := summarize(nil)
	assert.Zero(t, r.BillCount)
	assert.True(t, r.TotalRevenue.IsZero())
	assert.True(t, r.Pending.IsZero())
}

func TestWeeklySeries(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // Monday
	bills := []models.Bill{
		{GeneratedAt: start.Add(3 * time.Hour), Total: dec("100")},
		{GeneratedAt: start.Add(20 * time.Hour), Total: dec("50")},
		{GeneratedAt: start.AddDate(0, 0, 6).Add(23 * time.Hour), Total: dec("70")},
		{GeneratedAt: start.AddDate(0, 0, 7), Total: dec("999")},
	}
	series := weeklySeries(start, bills)

	require.Len(t, series, 7)
	assert.Equal(t, "Mon", series[0].Name)
	assert.Equal(t, "2025-06-02", series[0].Date)
	assert.True(t, series[0].Revenue.Equal(dec("150")))
	assert.True(t, series[3].Revenue.IsZero())
	assert.Equal(t, "Sun", series[6].Name)
	assert.True(t, series[6].Revenue.Equal(dec("70")))
}

func TestDayAndMonthBounds(t *testing.T) {
	at := time.Date(2025, 2, 14, 17, 30, 0, 0, time.UTC)
	from, to := dayBounds(at)
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), to)

	from, to = monthBounds(at)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestGroupAvailability(t *testing.T) {
	rooms := []models.Room{
		{RoomNumber: "101", Status: models.RoomOccupied},
		{RoomNumber: "102", Status: models.RoomAvailable},
		{RoomNumber: "103", Status: models.RoomAvailable},
		{RoomNumber: "104", Status: models.RoomMaintenance},
		{RoomNumber: "105", Status: models.RoomOccupied},
		{RoomNumber: "106", Status: models.RoomBooked},
		{RoomNumber: "107", Status: models.RoomAvailable},
		{RoomNumber: "108", Status: models.RoomAvailable},
	}
	av := groupAvailability(rooms)

	assert.Equal(t, 8, av.Stats.Total)
	assert.Equal(t, 4, av.Stats.Available)
	assert.Equal(t, 2, av.Stats.Occupied)
	assert.Equal(t, 1, av.Stats.Booked)
	assert.Equal(t, 0, av.Stats.Cleaning)
	assert.Equal(t, 25, av.Stats.OccupancyRate)
	assert.NotNil(t, av.Rooms[models.RoomCleaning])
	assert.Len(t, av.Rooms[models.RoomAvailable], 4)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, percent(0, 0))
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 13, percent(1, 8))
	assert.Equal(t, 100, percent(5, 5))
}
