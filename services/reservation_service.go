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

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type ReservationInput struct {
	GuestID          uint             `json:"guestId"`
	RoomID           uint             `json:"roomId"`
	CheckInDate      *time.Time       `json:"checkInDate"`
	ExpectedCheckOut *time.Time       `json:"expectedCheckOut"`
	AdvancePayment   *decimal.Decimal `json:"advancePayment"`
	Notes            string           `json:"notes"`
}

func (s *ReservationService) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Guest").Preload("Room.Category")
}

func (s *ReservationService) List(ctx context.Context, status string, guestID uint) ([]models.Reservation, error) {
	q := s.preload(s.DB.WithContext(ctx)).Order("check_in_date DESC")
	if status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	if guestID != 0 {
		q = q.Where("guest_id = ?", guestID)
	}
	var rows []models.Reservation
	err := q.Find(&rows).Error
	return rows, err
}

func (s *ReservationService) Get(ctx context.Context, id uint) (models.Reservation, error) {
	var r models.Reservation
	if err := s.preload(s.DB.WithContext(ctx)).First(&r, id).Error; err != nil {
		return r, notFoundOr("reservations.get", "reservation", id, err)
	}
	return r, nil
}

// Create books an AVAILABLE room; the room moves to BOOKED in the same
// transaction.
func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (models.Reservation, error) {
	const op = "reservations.create"
	if in.GuestID == 0 || in.RoomID == 0 || in.CheckInDate == nil || in.ExpectedCheckOut == nil {
		return models.Reservation{}, billing.Validation(op, "guest, room, check-in and check-out dates are required")
	}
	if !in.ExpectedCheckOut.After(*in.CheckInDate) {
		return models.Reservation{}, billing.Validation(op, "expected check-out must be after check-in")
	}
	advance := decimal.Zero
	if in.AdvancePayment != nil {
		if in.AdvancePayment.IsNegative() {
			return models.Reservation{}, billing.Validation(op, "advance payment must not be negative")
		}
		advance = *in.AdvancePayment
	}

	res := models.Reservation{
		GuestID:          in.GuestID,
		RoomID:           in.RoomID,
		CheckInDate:      *in.CheckInDate,
		ExpectedCheckOut: *in.ExpectedCheckOut,
		AdvancePayment:   advance,
		Notes:            strings.TrimSpace(in.Notes),
		Status:           models.ReservationReserved,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, in.GuestID).Error; err != nil {
			return notFoundOr(op, "guest", in.GuestID, err)
		}
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			return notFoundOr(op, "room", in.RoomID, err)
		}
		if room.Status != models.RoomAvailable {
			return billing.Conflict(op, "room %s is not available", room.RoomNumber)
		}
		if err := tx.Omit(clause.Associations).Create(&res).Error; err != nil {
			return billing.Internal(op, err)
		}
		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", models.RoomBooked).Error; err != nil {
			return billing.Internal(op, err)
		}
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}
	return s.Get(ctx, res.ID)
}

type ReservationUpdate struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Update changes status or notes. Cancelling frees the room unless the guest
// already checked in.
func (s *ReservationService) Update(ctx context.Context, id uint, in ReservationUpdate) (models.Reservation, models.Reservation, error) {
	const op = "reservations.update"
	old, err := s.Get(ctx, id)
	if err != nil {
		return old, old, err
	}
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status != "" && !models.ValidReservationStatus(status) {
		return old, old, billing.Validation(op, "invalid reservation status %q", status)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if status != "" {
			updates["status"] = status
		}
		if notes := strings.TrimSpace(in.Notes); notes != "" {
			updates["notes"] = notes
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return billing.Internal(op, err)
		}
		if status == models.ReservationCancelled && old.Status != models.ReservationCheckedIn {
			err := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", old.RoomID, models.RoomBooked).
				Update("status", models.RoomAvailable).Error
			if err != nil {
				return billing.Internal(op, err)
			}
		}
		return nil
	})
	if err != nil {
		return old, old, err
	}
	updated, err := s.Get(ctx, id)
	return old, updated, err
}
