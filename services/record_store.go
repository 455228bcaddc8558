package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
	"hotel-backoffice/utils"
)

// GormRecordStore implements billing.RecordStore on the gorm models.
type GormRecordStore struct {
	DB *gorm.DB
}

func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{DB: db}
}

var _ billing.RecordStore = (*GormRecordStore)(nil)

func notFoundOr(op, entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return billing.NotFound(op, entity, id)
	}
	return billing.Internal(op, err)
}

// ----------------------------------------------------
// stays & rooms
// ----------------------------------------------------

func (s *GormRecordStore) GetStay(ctx context.Context, id uint) (billing.Stay, error) {
	var m models.Stay
	if err := s.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return billing.Stay{}, notFoundOr("store.get_stay", "stay", id, err)
	}
	return toStayRecord(m), nil
}

// UpdateStay writes the checkout fields only while actual_check_out is still
// NULL, so two concurrent checkouts cannot both succeed.
func (s *GormRecordStore) UpdateStay(ctx context.Context, id uint, c billing.StayCheckout) error {
	const op = "store.update_stay"
	db := s.DB.WithContext(ctx)
	res := db.Model(&models.Stay{}).
		Where("id = ? AND actual_check_out IS NULL", id).
		Updates(map[string]interface{}{
			"actual_check_out": c.ActualCheckOut,
			"late_checkout":    c.LateCheckout,
			"late_charges":     c.LateCharges,
		})
	if res.Error != nil {
		return billing.Internal(op, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Model(&models.Stay{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return billing.Internal(op, err)
	}
	if n == 0 {
		return billing.NotFound(op, "stay", id)
	}
	return billing.AlreadyClosed(op, id)
}

// GetRoom also returns soft-deleted rooms so old stays stay billable.
func (s *GormRecordStore) GetRoom(ctx context.Context, id uint) (billing.Room, error) {
	var m models.Room
	if err := s.DB.WithContext(ctx).Unscoped().Preload("Category").First(&m, id).Error; err != nil {
		return billing.Room{}, notFoundOr("store.get_room", "room", id, err)
	}
	return billing.Room{
		ID:           m.ID,
		Number:       m.RoomNumber,
		CategoryName: m.Category.Name,
		BasePrice:    m.Category.BasePrice,
	}, nil
}

// ----------------------------------------------------
// bills
// ----------------------------------------------------

func (s *GormRecordStore) GetBill(ctx context.Context, id uint) (billing.Bill, error) {
	var m models.Bill
	if err := s.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return billing.Bill{}, notFoundOr("store.get_bill", "bill", id, err)
	}
	return toBillRecord(m), nil
}

func (s *GormRecordStore) FindBillByStay(ctx context.Context, stayID uint) (billing.Bill, bool, error) {
	var bills []models.Bill
	err := s.DB.WithContext(ctx).
		Where("stay_id = ?", stayID).
		Order("id ASC").
		Limit(1).
		Find(&bills).Error
	if err != nil {
		return billing.Bill{}, false, billing.Internal("store.find_bill_by_stay", err)
	}
	if len(bills) == 0 {
		return billing.Bill{}, false, nil
	}
	return toBillRecord(bills[0]), true, nil
}

func (s *GormRecordStore) CreateBill(ctx context.Context, b *billing.Bill) error {
	const op = "store.create_bill"
	m := models.Bill{
		BillNumber:  b.Number,
		GuestID:     b.GuestID,
		StayID:      b.StayID,
		Subtotal:    b.Subtotal,
		Tax:         b.Tax,
		Total:       b.Total,
		Status:      string(b.Status),
		GeneratedAt: b.CreatedAt,
	}
	// Inside an outer transaction this runs under a savepoint, so a duplicate
	// bill number can be retried on PostgreSQL without aborting the transaction.
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&m).Error
	})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return billing.Conflict(op, "bill number %s already exists", b.Number)
		}
		return billing.Internal(op, err)
	}
	b.ID = m.ID
	return nil
}

func (s *GormRecordStore) UpdateBill(ctx context.Context, b billing.Bill) error {
	err := s.DB.WithContext(ctx).
		Model(&models.Bill{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"subtotal": b.Subtotal,
			"tax":      b.Tax,
			"total":    b.Total,
			"status":   string(b.Status),
		}).Error
	if err != nil {
		return billing.Internal("store.update_bill", err)
	}
	return nil
}

// ----------------------------------------------------
// line items & payments
// ----------------------------------------------------

func (s *GormRecordStore) CreateLineItem(ctx context.Context, it *billing.LineItem) error {
	m := models.BillItem{
		BillID:      it.BillID,
		Type:        string(it.Type),
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		Total:       it.Total,
		RoomID:      it.RoomID,
		FoodID:      it.FoodID,
		ServiceID:   it.ServiceID,
		CreatedAt:   it.CreatedAt,
	}
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return billing.Internal("store.create_line_item", err)
	}
	it.ID = m.ID
	return nil
}

func (s *GormRecordStore) ListLineItems(ctx context.Context, billID uint) ([]billing.LineItem, error) {
	var rows []models.BillItem
	if err := s.DB.WithContext(ctx).Where("bill_id = ?", billID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, billing.Internal("store.list_line_items", err)
	}
	out := make([]billing.LineItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, toLineItemRecord(r))
	}
	return out, nil
}

func (s *GormRecordStore) CreatePayment(ctx context.Context, p *billing.Payment) error {
	m := models.Payment{
		BillID:        p.BillID,
		Amount:        p.Amount,
		PaymentMethod: p.Method,
		Notes:         p.Note,
		PaidAt:        p.PaidAt,
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return billing.Internal("store.create_payment", err)
	}
	p.ID = m.ID
	return nil
}

func (s *GormRecordStore) ListPayments(ctx context.Context, billID uint) ([]billing.Payment, error) {
	var rows []models.Payment
	if err := s.DB.WithContext(ctx).Where("bill_id = ?", billID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, billing.Internal("store.list_payments", err)
	}
	out := make([]billing.Payment, 0, len(rows))
	for _, r := range rows {
		out = append(out, toPaymentRecord(r))
	}
	return out, nil
}

func (s *GormRecordStore) Atomically(ctx context.Context, fn func(billing.RecordStore) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRecordStore{DB: tx})
	})
}

// ----------------------------------------------------
// mapping
// ----------------------------------------------------

func toStayRecord(m models.Stay) billing.Stay {
	st := billing.Stay{
		ID:               m.ID,
		GuestID:          m.GuestID,
		RoomID:           m.RoomID,
		ReservationID:    m.ReservationID,
		CheckInAt:        m.CheckInAt,
		ExpectedCheckOut: m.ExpectedCheckOut,
		ActualCheckOut:   m.ActualCheckOut,
		LateCheckout:     m.LateCheckout,
		LateCharges:      m.LateCharges,
	}
	if m.CustomRate.Valid {
		rate := m.CustomRate.Decimal
		st.CustomRate = &rate
	}
	return st
}

func toBillRecord(m models.Bill) billing.Bill {
	return billing.Bill{
		ID:        m.ID,
		Number:    m.BillNumber,
		GuestID:   m.GuestID,
		StayID:    m.StayID,
		Subtotal:  m.Subtotal,
		Tax:       m.Tax,
		Total:     m.Total,
		Status:    billing.BillStatus(m.Status),
		CreatedAt: m.GeneratedAt,
	}
}

func toLineItemRecord(m models.BillItem) billing.LineItem {
	return billing.LineItem{
		ID:          m.ID,
		BillID:      m.BillID,
		Type:        billing.ItemType(m.Type),
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Total:       m.Total,
		RoomID:      m.RoomID,
		FoodID:      m.FoodID,
		ServiceID:   m.ServiceID,
		CreatedAt:   m.CreatedAt,
	}
}

func toPaymentRecord(m models.Payment) billing.Payment {
	return billing.Payment{
		ID:     m.ID,
		BillID: m.BillID,
		Amount: m.Amount,
		Method: m.PaymentMethod,
		Note:   m.Notes,
		PaidAt: m.PaidAt,
	}
}

func nullRate(rate *decimal.Decimal) decimal.NullDecimal {
	if rate == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *rate, Valid: true}
}
