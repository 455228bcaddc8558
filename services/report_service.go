package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type Breakdown struct {
	Room    decimal.Decimal `json:"room"`
	Food    decimal.Decimal `json:"food"`
	Service decimal.Decimal `json:"service"`
	Other   decimal.Decimal `json:"other"`
}

type RevenueReport struct {
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	Pending      decimal.Decimal `json:"pending"`
	Breakdown    Breakdown       `json:"breakdown"`
	BillCount    int             `json:"billCount"`

	TotalExpenses *decimal.Decimal `json:"totalExpenses,omitempty"`
	NetProfit     *decimal.Decimal `json:"netProfit,omitempty"`
}

type OccupancyReport struct {
	TotalRooms     int   `json:"totalRooms"`
	OccupiedRooms  int   `json:"occupiedRooms"`
	AvailableRooms int   `json:"availableRooms"`
	OccupancyRate  int   `json:"occupancyRate"`
	CheckInsToday  int64 `json:"checkInsToday"`
	CheckOutsToday int64 `json:"checkOutsToday"`
}

type DayRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Date    string          `json:"date"`
}

// dayBounds returns [start of day, start of next day) in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// summarize adds up bill totals, payments, and line totals by item type.
func summarize(bills []models.Bill) RevenueReport {
	r := RevenueReport{
		TotalRevenue: decimal.Zero,
		TotalPaid:    decimal.Zero,
		Breakdown: Breakdown{
			Room:    decimal.Zero,
			Food:    decimal.Zero,
			Service: decimal.Zero,
			Other:   decimal.Zero,
		},
		BillCount: len(bills),
	}
	for _, b := range bills {
		r.TotalRevenue = r.TotalRevenue.Add(b.Total)
		for _, p := range b.Payments {
			r.TotalPaid = r.TotalPaid.Add(p.Amount)
		}
		for _, it := range b.Items {
			switch billing.ItemType(it.Type) {
			case billing.ItemRoom:
				r.Breakdown.Room = r.Breakdown.Room.Add(it.Total)
			case billing.ItemFood:
				r.Breakdown.Food = r.Breakdown.Food.Add(it.Total)
			case billing.ItemService:
				r.Breakdown.Service = r.Breakdown.Service.Add(it.Total)
			default:
				r.Breakdown.Other = r.Breakdown.Other.Add(it.Total)
			}
		}
	}
	r.Pending = r.TotalRevenue.Sub(r.TotalPaid)
	return r
}

func (s *ReportService) revenue(ctx context.Context, from, to *time.Time) (RevenueReport, error) {
	q := s.DB.WithContext(ctx).Preload("Items").Preload("Payments")
	if from != nil && to != nil {
		q = q.Where("generated_at >= ? AND generated_at < ?", *from, *to)
	}
	var bills []models.Bill
	if err := q.Find(&bills).Error; err != nil {
		return RevenueReport{}, billing.Internal("reports.revenue", err)
	}
	r := summarize(bills)
	r.From, r.To = from, to
	return r, nil
}

func (s *ReportService) Daily(ctx context.Context, day time.Time) (RevenueReport, error) {
	from, to := dayBounds(day)
	return s.revenue(ctx, &from, &to)
}

func (s *ReportService) Monthly(ctx context.Context, day time.Time) (RevenueReport, error) {
	from, to := monthBounds(day)
	return s.revenue(ctx, &from, &to)
}

// Overall covers every bill and subtracts received vendor bills.
func (s *ReportService) Overall(ctx context.Context) (RevenueReport, error) {
	r, err := s.revenue(ctx, nil, nil)
	if err != nil {
		return r, err
	}
	var txs []models.VendorTransaction
	if err := s.DB.WithContext(ctx).Where("type = ?", models.VendorBillReceived).Find(&txs).Error; err != nil {
		return r, billing.Internal("reports.overall", err)
	}
	expenses := decimal.Zero
	for _, t := range txs {
		expenses = expenses.Add(t.Amount)
	}
	net := r.TotalRevenue.Sub(expenses)
	r.TotalExpenses, r.NetProfit = &expenses, &net
	return r, nil
}

func (s *ReportService) Occupancy(ctx context.Context, now time.Time) (OccupancyReport, error) {
	const op = "reports.occupancy"
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Find(&rooms).Error; err != nil {
		return OccupancyReport{}, billing.Internal(op, err)
	}
	out := OccupancyReport{TotalRooms: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case models.RoomOccupied:
			out.OccupiedRooms++
		case models.RoomAvailable:
			out.AvailableRooms++
		}
	}
	out.OccupancyRate = percent(out.OccupiedRooms, out.TotalRooms)

	start, end := dayBounds(now)
	if err := s.DB.WithContext(ctx).Model(&models.Stay{}).
		Where("check_in_at >= ? AND check_in_at < ?", start, end).
		Count(&out.CheckInsToday).Error; err != nil {
		return out, billing.Internal(op, err)
	}
	if err := s.DB.WithContext(ctx).Model(&models.Stay{}).
		Where("actual_check_out >= ? AND actual_check_out < ?", start, end).
		Count(&out.CheckOutsToday).Error; err != nil {
		return out, billing.Internal(op, err)
	}
	return out, nil
}

// Weekly returns the revenue of the seven days ending on day.
func (s *ReportService) Weekly(ctx context.Context, day time.Time) ([]DayRevenue, error) {
	_, end := dayBounds(day)
	start := end.AddDate(0, 0, -7)
	var bills []models.Bill
	err := s.DB.WithContext(ctx).
		Where("generated_at >= ? AND generated_at < ?", start, end).
		Find(&bills).Error
	if err != nil {
		return nil, billing.Internal("reports.weekly", err)
	}
	return weeklySeries(start, bills), nil
}

func weeklySeries(start time.Time, bills []models.Bill) []DayRevenue {
	out := make([]DayRevenue, 7)
	for i := range out {
		d := start.AddDate(0, 0, i)
		out[i] = DayRevenue{Name: d.Format("Mon"), Revenue: decimal.Zero, Date: d.Format("2006-01-02")}
	}
	for _, b := range bills {
		at := b.GeneratedAt.In(start.Location())
		for i := range out {
			from := start.AddDate(0, 0, i)
			if !at.Before(from) && at.Before(from.AddDate(0, 0, 1)) {
				out[i].Revenue = out[i].Revenue.Add(b.Total)
				break
			}
		}
	}
	return out
}
