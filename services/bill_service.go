package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
)

// BillService serves the bill and payment endpoints. Every write is delegated
// to the billing engine.
type BillService struct {
	DB     *gorm.DB
	Engine *billing.Engine
}

func NewBillService(db *gorm.DB, engine *billing.Engine) *BillService {
	return &BillService{DB: db, Engine: engine}
}

type BillFilter struct {
	ID         uint
	GuestID    uint
	BillNumber string
	Status     string
}

func preloadBill(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Guest").
		Preload("Stay.Room.Category").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Food").
		Preload("Items.Service").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func loadBill(db *gorm.DB, id uint) (models.Bill, error) {
	var b models.Bill
	if err := preloadBill(db).First(&b, id).Error; err != nil {
		return b, notFoundOr("bills.get", "bill", id, err)
	}
	return b, nil
}

func (s *BillService) List(ctx context.Context, f BillFilter) ([]models.Bill, error) {
	q := preloadBill(s.DB.WithContext(ctx)).Order("generated_at DESC")
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.GuestID != 0 {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.BillNumber != "" {
		q = q.Where("bill_number = ?", f.BillNumber)
	}
	if f.Status != "" {
		q = q.Where("status = ?", strings.ToUpper(f.Status))
	}
	var bills []models.Bill
	err := q.Find(&bills).Error
	return bills, err
}

func (s *BillService) Get(ctx context.Context, id uint) (models.Bill, error) {
	return loadBill(s.DB.WithContext(ctx), id)
}

type GenerateBillInput struct {
	GuestID uint  `json:"guestId"`
	StayID  *uint `json:"checkInId"`
}

// Generate opens a bill for a guest. A stay may carry only one bill; without a
// stay the bill is a walk-in bill.
func (s *BillService) Generate(ctx context.Context, in GenerateBillInput) (models.Bill, error) {
	const op = "bills.generate"
	if in.GuestID == 0 {
		return models.Bill{}, billing.Validation(op, "guest id is required")
	}
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, in.GuestID).Error; err != nil {
		return models.Bill{}, notFoundOr(op, "guest", in.GuestID, err)
	}

	var (
		bill billing.Bill
		err  error
	)
	if in.StayID != nil && *in.StayID != 0 {
		var stay models.Stay
		if err := s.DB.WithContext(ctx).First(&stay, *in.StayID).Error; err != nil {
			return models.Bill{}, notFoundOr(op, "stay", *in.StayID, err)
		}
		if stay.GuestID != in.GuestID {
			return models.Bill{}, billing.Validation(op, "stay %d does not belong to guest %d", stay.ID, in.GuestID)
		}
		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.Bill{}).Where("stay_id = ?", stay.ID).Count(&n).Error; err != nil {
			return models.Bill{}, billing.Internal(op, err)
		}
		if n > 0 {
			return models.Bill{}, billing.Conflict(op, "stay %d already has a bill", stay.ID)
		}
		bill, err = s.Engine.Open(ctx, billing.OpenStayRequest{StayID: stay.ID})
	} else {
		bill, err = s.Engine.OpenWalkIn(ctx, in.GuestID)
	}
	if err != nil {
		return models.Bill{}, err
	}
	return s.Get(ctx, bill.ID)
}

type BillItemInput struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	FoodID      *uint            `json:"foodId"`
	ServiceID   *uint            `json:"serviceId"`
}

// AddItem appends a charge. FOOD and SERVICE items referencing the catalog
// take their price and name from it when the request leaves them out.
func (s *BillService) AddItem(ctx context.Context, billID uint, in BillItemInput) (models.Bill, error) {
	const op = "bills.add_item"
	itemType := billing.ItemType(strings.ToUpper(strings.TrimSpace(in.Type)))
	req := billing.AddChargeRequest{
		BillID:      billID,
		Type:        itemType,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if in.UnitPrice != nil {
		req.UnitPrice = *in.UnitPrice
	}

	switch {
	case itemType == billing.ItemFood && in.FoodID != nil:
		var food models.FoodMenuItem
		if err := s.DB.WithContext(ctx).First(&food, *in.FoodID).Error; err != nil {
			return models.Bill{}, notFoundOr(op, "food item", *in.FoodID, err)
		}
		if !food.Available {
			return models.Bill{}, billing.Conflict(op, "%s is not available", food.Name)
		}
		req.FoodID = &food.ID
		if in.UnitPrice == nil {
			req.UnitPrice = food.Price
		}
		if req.Description == "" {
			req.Description = food.Name
		}
	case itemType == billing.ItemService && in.ServiceID != nil:
		var svc models.ExtraService
		if err := s.DB.WithContext(ctx).First(&svc, *in.ServiceID).Error; err != nil {
			return models.Bill{}, notFoundOr(op, "service", *in.ServiceID, err)
		}
		if !svc.Available {
			return models.Bill{}, billing.Conflict(op, "%s is not available", svc.Name)
		}
		req.ServiceID = &svc.ID
		if in.UnitPrice == nil {
			req.UnitPrice = svc.Price
		}
		if req.Description == "" {
			req.Description = svc.Name
		}
	}

	if _, err := s.Engine.AddCharge(ctx, req); err != nil {
		return models.Bill{}, err
	}
	return s.Get(ctx, billID)
}

func (s *BillService) Recalculate(ctx context.Context, billID uint) (models.Bill, error) {
	if _, err := s.Engine.Recalculate(ctx, billID); err != nil {
		return models.Bill{}, err
	}
	return s.Get(ctx, billID)
}

// ----------------------------------------------------
// payments
// ----------------------------------------------------

type PaymentInput struct {
	BillID        uint            `json:"billId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Method        string          `json:"method"`
	Notes         string          `json:"notes"`
}

// PaymentReceipt is the response of a recorded payment.
type PaymentReceipt struct {
	Payment    models.Payment  `json:"payment"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Remaining  decimal.Decimal `json:"remaining"`
	BillStatus string          `json:"billStatus"`
}

func (s *BillService) RecordPayment(ctx context.Context, in PaymentInput) (PaymentReceipt, error) {
	method := in.PaymentMethod
	if method == "" {
		method = in.Method
	}
	res, err := s.Engine.RecordPayment(ctx, billing.RecordPaymentRequest{
		BillID: in.BillID,
		Amount: in.Amount,
		Method: method,
		Note:   in.Notes,
	})
	if err != nil {
		return PaymentReceipt{}, err
	}
	return PaymentReceipt{
		Payment: models.Payment{
			ID:            res.Payment.ID,
			BillID:        res.Payment.BillID,
			Amount:        res.Payment.Amount,
			PaymentMethod: res.Payment.Method,
			Notes:         res.Payment.Note,
			PaidAt:        res.Payment.PaidAt,
		},
		TotalPaid:  res.TotalPaid,
		Remaining:  res.Remaining,
		BillStatus: string(res.Status),
	}, nil
}

type PaymentSummary struct {
	Payments  []models.Payment `json:"payments"`
	TotalPaid decimal.Decimal  `json:"totalPaid"`
	Remaining decimal.Decimal  `json:"remaining"`
	Status    string           `json:"status"`
}

func (s *BillService) Payments(ctx context.Context, billID uint) (PaymentSummary, error) {
	var bill models.Bill
	if err := s.DB.WithContext(ctx).First(&bill, billID).Error; err != nil {
		return PaymentSummary{}, notFoundOr("bills.payments", "bill", billID, err)
	}
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).Where("bill_id = ?", billID).Order("paid_at DESC").Find(&payments).Error; err != nil {
		return PaymentSummary{}, billing.Internal("bills.payments", err)
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return PaymentSummary{
		Payments:  payments,
		TotalPaid: paid,
		Remaining: bill.Total.Sub(paid),
		Status:    bill.Status,
	}, nil
}
