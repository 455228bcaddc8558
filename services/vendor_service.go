package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
)

type VendorService struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewVendorService(db *gorm.DB) *VendorService {
	return &VendorService{DB: db, Clock: time.Now}
}

type VendorInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Services      string `json:"services"`
}

type transactionCount struct {
	VendorID uint
	N        int64
}

func (s *VendorService) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	var counts []transactionCount
	err := s.DB.WithContext(ctx).
		Model(&models.VendorTransaction{}).
		Select("vendor_id, COUNT(*) AS n").
		Group("vendor_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	byVendor := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byVendor[c.VendorID] = c.N
	}
	for i := range vendors {
		vendors[i].TransactionCount = byVendor[vendors[i].ID]
	}
	return vendors, nil
}

func (s *VendorService) Create(ctx context.Context, in VendorInput) (models.Vendor, error) {
	const op = "vendors.create"
	v := models.Vendor{
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Address:       strings.TrimSpace(in.Address),
		Services:      strings.TrimSpace(in.Services),
	}
	if v.Name == "" {
		return v, billing.Validation(op, "vendor name is required")
	}
	if err := s.DB.WithContext(ctx).Create(&v).Error; err != nil {
		return v, billing.Internal(op, err)
	}
	return v, nil
}

func (s *VendorService) Update(ctx context.Context, id uint, in VendorInput) (models.Vendor, models.Vendor, error) {
	const op = "vendors.update"
	var old models.Vendor
	if err := s.DB.WithContext(ctx).First(&old, id).Error; err != nil {
		return old, old, notFoundOr(op, "vendor", id, err)
	}
	v := old
	if name := strings.TrimSpace(in.Name); name != "" {
		v.Name = name
	}
	v.ContactPerson = strings.TrimSpace(in.ContactPerson)
	v.Phone = strings.TrimSpace(in.Phone)
	v.Email = strings.TrimSpace(in.Email)
	v.Address = strings.TrimSpace(in.Address)
	v.Services = strings.TrimSpace(in.Services)
	if err := s.DB.WithContext(ctx).Save(&v).Error; err != nil {
		return old, v, billing.Internal(op, err)
	}
	return old, v, nil
}

// ----------------------------------------------------
// transactions
// ----------------------------------------------------

type VendorTransactionInput struct {
	VendorID        uint            `json:"vendorId"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
}

func (s *VendorService) Transactions(ctx context.Context, vendorID uint) ([]models.VendorTransaction, error) {
	q := s.DB.WithContext(ctx).Preload("Vendor").Order("date DESC")
	if vendorID != 0 {
		q = q.Where("vendor_id = ?", vendorID)
	}
	var rows []models.VendorTransaction
	err := q.Find(&rows).Error
	return rows, err
}

// CreateTransaction records a received bill (UNPAID) or a payment (PAID).
func (s *VendorService) CreateTransaction(ctx context.Context, in VendorTransactionInput) (models.VendorTransaction, error) {
	const op = "vendors.create_transaction"
	kind := strings.ToUpper(strings.TrimSpace(in.TransactionType))
	if in.VendorID == 0 || strings.TrimSpace(in.Description) == "" || kind == "" || in.Amount.IsZero() {
		return models.VendorTransaction{}, billing.Validation(op, "vendor, amount, description, and type are required")
	}
	if kind != models.VendorBillReceived && kind != models.VendorPaymentMade {
		return models.VendorTransaction{}, billing.Validation(op, "invalid transaction type %q", kind)
	}
	if !in.Amount.IsPositive() {
		return models.VendorTransaction{}, billing.Validation(op, "amount must be positive")
	}
	var vendor models.Vendor
	if err := s.DB.WithContext(ctx).First(&vendor, in.VendorID).Error; err != nil {
		return models.VendorTransaction{}, notFoundOr(op, "vendor", in.VendorID, err)
	}

	tx := models.VendorTransaction{
		VendorID:      vendor.ID,
		Type:          kind,
		Amount:        in.Amount,
		Description:   strings.TrimSpace(in.Description),
		PaymentStatus: models.VendorPaid,
		Date:          s.Clock(),
	}
	if kind == models.VendorBillReceived {
		tx.PaymentStatus = models.VendorUnpaid
	}
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(&tx).Error; err != nil {
		return tx, billing.Internal(op, err)
	}
	tx.Vendor = vendor
	return tx, nil
}

func (s *VendorService) SetTransactionStatus(ctx context.Context, id uint, status string) (models.VendorTransaction, error) {
	const op = "vendors.set_transaction_status"
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != models.VendorPaid && status != models.VendorUnpaid {
		return models.VendorTransaction{}, billing.Validation(op, "invalid payment status %q", status)
	}
	res := s.DB.WithContext(ctx).Model(&models.VendorTransaction{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return models.VendorTransaction{}, billing.Internal(op, res.Error)
	}
	var tx models.VendorTransaction
	if err := s.DB.WithContext(ctx).Preload("Vendor").First(&tx, id).Error; err != nil {
		return tx, notFoundOr(op, "transaction", id, err)
	}
	return tx, nil
}

// ----------------------------------------------------
// expenses
// ----------------------------------------------------

type ExpenseInput struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

// Expenses lists expenses, restricted to one local day when day is set.
func (s *VendorService) Expenses(ctx context.Context, day *time.Time) ([]models.Expense, error) {
	q := s.DB.WithContext(ctx).Order("date DESC")
	if day != nil {
		start, end := dayBounds(*day)
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	var rows []models.Expense
	err := q.Find(&rows).Error
	return rows, err
}

func (s *VendorService) CreateExpense(ctx context.Context, in ExpenseInput) (models.Expense, error) {
	const op = "expenses.create"
	e := models.Expense{
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
	}
	if e.Category == "" || in.Amount.IsZero() || in.Date == nil {
		return e, billing.Validation(op, "category, amount, and date are required")
	}
	if !in.Amount.IsPositive() {
		return e, billing.Validation(op, "amount must be positive")
	}
	e.Date = *in.Date
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return e, billing.Internal(op, err)
	}
	return e, nil
}

func (s *VendorService) DeleteExpense(ctx context.Context, id uint) error {
	const op = "expenses.delete"
	res := s.DB.WithContext(ctx).Delete(&models.Expense{}, id)
	if res.Error != nil {
		return billing.Internal(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return billing.NotFound(op, "expense", id)
	}
	return nil
}
