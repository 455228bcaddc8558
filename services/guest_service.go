package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
	"hotel-backoffice/utils"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

type GuestInput struct {
	Name     string  `json:"name"`
	CNIC     *string `json:"cnic"`
	Passport *string `json:"passport"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Address  string  `json:"address"`
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ----------------------------------------------------
// List: search over name, phone, CNIC and passport; latest 100 otherwise
// ----------------------------------------------------
func (s *GuestService) List(ctx context.Context, search string) ([]models.Guest, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	search = strings.TrimSpace(search)
	if search == "" {
		q = q.Limit(100)
	} else {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR cnic LIKE ? OR passport LIKE ?", like, like, like, like)
	}
	var guests []models.Guest
	err := q.Find(&guests).Error
	return guests, err
}

func (s *GuestService) Get(ctx context.Context, id uint) (models.Guest, error) {
	var g models.Guest
	if err := s.DB.WithContext(ctx).First(&g, id).Error; err != nil {
		return g, notFoundOr("guests.get", "guest", id, err)
	}
	return g, nil
}

func (s *GuestService) Create(ctx context.Context, in GuestInput) (models.Guest, error) {
	const op = "guests.create"
	g := models.Guest{
		Name:     strings.TrimSpace(in.Name),
		CNIC:     optional(in.CNIC),
		Passport: optional(in.Passport),
		Phone:    strings.TrimSpace(in.Phone),
		Email:    strings.TrimSpace(in.Email),
		Address:  strings.TrimSpace(in.Address),
	}
	if g.Name == "" || g.Phone == "" {
		return g, billing.Validation(op, "name and phone are required")
	}
	if err := s.ensureUniqueDocuments(ctx, op, 0, g.CNIC, g.Passport); err != nil {
		return g, err
	}
	if err := s.DB.WithContext(ctx).Create(&g).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return g, billing.Conflict(op, "guest with this CNIC or passport already exists")
		}
		return g, billing.Internal(op, err)
	}
	return g, nil
}

// Update returns the row before and after the change.
func (s *GuestService) Update(ctx context.Context, id uint, in GuestInput) (models.Guest, models.Guest, error) {
	const op = "guests.update"
	old, err := s.Get(ctx, id)
	if err != nil {
		return old, old, err
	}
	g := old
	if v := strings.TrimSpace(in.Name); v != "" {
		g.Name = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		g.Phone = v
	}
	if in.CNIC != nil {
		g.CNIC = optional(in.CNIC)
	}
	if in.Passport != nil {
		g.Passport = optional(in.Passport)
	}
	g.Email = strings.TrimSpace(in.Email)
	g.Address = strings.TrimSpace(in.Address)

	if err := s.ensureUniqueDocuments(ctx, op, id, g.CNIC, g.Passport); err != nil {
		return old, g, err
	}
	if err := s.DB.WithContext(ctx).Save(&g).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return old, g, billing.Conflict(op, "guest with this CNIC or passport already exists")
		}
		return old, g, billing.Internal(op, err)
	}
	return old, g, nil
}

func (s *GuestService) ensureUniqueDocuments(ctx context.Context, op string, selfID uint, cnic, passport *string) error {
	check := func(column, value, label string) error {
		var n int64
		err := s.DB.WithContext(ctx).Model(&models.Guest{}).
			Where(column+" = ? AND id <> ?", value, selfID).
			Count(&n).Error
		if err != nil {
			return billing.Internal(op, err)
		}
		if n > 0 {
			return billing.Conflict(op, "guest with this %s already exists", label)
		}
		return nil
	}
	if cnic != nil {
		if err := check("cnic", *cnic, "CNIC"); err != nil {
			return err
		}
	}
	if passport != nil {
		if err := check("passport", *passport, "passport"); err != nil {
			return err
		}
	}
	return nil
}
