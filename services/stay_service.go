package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
)

// StayService runs check-in and check-out. Pricing and bill writes go through
// the billing engine; room and reservation status changes happen here.
type StayService struct {
	DB     *gorm.DB
	Engine *billing.Engine
	Clock  func() time.Time
	Log    *logrus.Entry
}

func NewStayService(db *gorm.DB, engine *billing.Engine, log *logrus.Entry) *StayService {
	return &StayService{DB: db, Engine: engine, Clock: time.Now, Log: log}
}

type CheckInInput struct {
	ReservationID    *uint            `json:"reservationId"`
	GuestID          uint             `json:"guestId"`
	RoomID           uint             `json:"roomId"`
	ExpectedCheckOut *time.Time       `json:"expectedCheckOut"`
	CustomPrice      *decimal.Decimal `json:"customPrice"`
	AdvancePayment   *decimal.Decimal `json:"advancePayment"`
	AdvanceMethod    string           `json:"advanceMethod"`
}

type CheckOutResult struct {
	Stay models.Stay `json:"checkIn"`
	Bill models.Bill `json:"bill"`
}

func (s *StayService) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Guest").Preload("Room.Category").Preload("Reservation").Preload("Bills")
}

func (s *StayService) List(ctx context.Context, activeOnly bool) ([]models.Stay, error) {
	q := s.preload(s.DB.WithContext(ctx)).Order("check_in_at DESC")
	if activeOnly {
		q = q.Where("actual_check_out IS NULL")
	}
	var stays []models.Stay
	err := q.Find(&stays).Error
	return stays, err
}

func (s *StayService) Get(ctx context.Context, id uint) (models.Stay, error) {
	var st models.Stay
	if err := s.preload(s.DB.WithContext(ctx)).First(&st, id).Error; err != nil {
		return st, notFoundOr("stays.get", "stay", id, err)
	}
	return st, nil
}

// Overdue lists in-house stays whose expected check-out has passed.
func (s *StayService) Overdue(ctx context.Context, now time.Time) ([]models.Stay, error) {
	var stays []models.Stay
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Where("actual_check_out IS NULL AND expected_check_out < ?", now).
		Order("expected_check_out ASC").
		Find(&stays).Error
	return stays, err
}

// ----------------------------------------------------
// Check-in (POST /api/checkins)
// ----------------------------------------------------

func (s *StayService) CheckIn(ctx context.Context, in CheckInInput) (models.Stay, error) {
	stay, err := s.checkIn(ctx, in)
	if err != nil {
		return models.Stay{}, err
	}
	return s.Get(ctx, stay.ID)
}

// checkIn writes the stay, marks the room OCCUPIED and the reservation
// CHECKED_IN in one transaction, then opens the bill.
func (s *StayService) checkIn(ctx context.Context, in CheckInInput) (models.Stay, error) {
	const op = "stays.check_in"
	if in.ReservationID != nil && *in.ReservationID == 0 {
		in.ReservationID = nil
	}

	if in.ReservationID != nil {
		var res models.Reservation
		if err := s.DB.WithContext(ctx).First(&res, *in.ReservationID).Error; err != nil {
			return models.Stay{}, notFoundOr(op, "reservation", *in.ReservationID, err)
		}
		if res.Status == models.ReservationCancelled || res.Status == models.ReservationCheckedOut {
			return models.Stay{}, billing.Conflict(op, "reservation %d is %s", res.ID, res.Status)
		}
		if in.GuestID == 0 {
			in.GuestID = res.GuestID
		}
		if in.RoomID == 0 {
			in.RoomID = res.RoomID
		}
		if in.ExpectedCheckOut == nil {
			exp := res.ExpectedCheckOut
			in.ExpectedCheckOut = &exp
		}
		if in.AdvancePayment == nil && res.AdvancePayment.IsPositive() {
			adv := res.AdvancePayment
			in.AdvancePayment = &adv
		}
	}

	if in.GuestID == 0 || in.RoomID == 0 || in.ExpectedCheckOut == nil {
		return models.Stay{}, billing.Validation(op, "guest, room, and expected checkout date are required")
	}
	if in.CustomPrice != nil && !in.CustomPrice.IsPositive() {
		return models.Stay{}, billing.Validation(op, "custom price must be positive")
	}
	advance := decimal.Zero
	if in.AdvancePayment != nil {
		advance = *in.AdvancePayment
	}
	if advance.IsNegative() {
		return models.Stay{}, billing.Validation(op, "advance payment must not be negative")
	}
	if in.AdvanceMethod != "" && !billing.ValidPaymentMethod(in.AdvanceMethod) {
		return models.Stay{}, billing.Validation(op, "invalid payment method %q", in.AdvanceMethod)
	}

	stay := models.Stay{
		ReservationID:    in.ReservationID,
		GuestID:          in.GuestID,
		RoomID:           in.RoomID,
		CheckInAt:        s.Clock(),
		ExpectedCheckOut: *in.ExpectedCheckOut,
		CustomRate:       nullRate(in.CustomPrice),
		LateCharges:      decimal.Zero,
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
		if room.Status == models.RoomOccupied || room.Status == models.RoomMaintenance {
			return billing.Conflict(op, "room %s is %s", room.RoomNumber, room.Status)
		}
		if err := tx.Omit(clause.Associations).Create(&stay).Error; err != nil {
			return billing.Internal(op, err)
		}
		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", models.RoomOccupied).Error; err != nil {
			return billing.Internal(op, err)
		}
		if stay.ReservationID != nil {
			err := tx.Model(&models.Reservation{}).
				Where("id = ?", *stay.ReservationID).
				Update("status", models.ReservationCheckedIn).Error
			if err != nil {
				return billing.Internal(op, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Stay{}, err
	}

	if _, err := s.Engine.Open(ctx, billing.OpenStayRequest{
		StayID:        stay.ID,
		Advance:       advance,
		AdvanceMethod: in.AdvanceMethod,
	}); err != nil {
		// the stay stands; checkout creates the missing bill
		s.Log.WithError(err).WithFields(logrus.Fields{
			"stay_id": stay.ID,
			"advance": advance.String(),
		}).Warn("opening bill at check-in failed")
	}

	s.Log.WithFields(logrus.Fields{
		"stay_id":  stay.ID,
		"guest_id": stay.GuestID,
		"room_id":  stay.RoomID,
	}).Info("guest checked in")
	return stay, nil
}

// ----------------------------------------------------
// Check-out (PUT /api/checkins/:id/checkout)
// ----------------------------------------------------

// CheckOut closes the stay through the engine and then releases the room.
// A second checkout fails in the engine, so the room is released once.
func (s *StayService) CheckOut(ctx context.Context, id uint, now time.Time) (CheckOutResult, error) {
	res, err := s.checkOut(ctx, id, now)
	if err != nil {
		return CheckOutResult{}, err
	}
	stay, err := s.Get(ctx, id)
	if err != nil {
		return CheckOutResult{}, err
	}
	bill, err := loadBill(s.DB.WithContext(ctx), res.Bill.ID)
	if err != nil {
		return CheckOutResult{}, err
	}
	return CheckOutResult{Stay: stay, Bill: bill}, nil
}

func (s *StayService) checkOut(ctx context.Context, id uint, now time.Time) (billing.CloseResult, error) {
	const op = "stays.check_out"
	res, err := s.Engine.Close(ctx, billing.CloseStayRequest{StayID: id, Now: now})
	if err != nil {
		return billing.CloseResult{}, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Room{}).Where("id = ?", res.Stay.RoomID).Update("status", models.RoomAvailable).Error; err != nil {
			return err
		}
		if res.Stay.ReservationID != nil {
			return tx.Model(&models.Reservation{}).
				Where("id = ?", *res.Stay.ReservationID).
				Update("status", models.ReservationCheckedOut).Error
		}
		return nil
	})
	if err != nil {
		s.Log.WithError(err).WithFields(logrus.Fields{
			"stay_id": id,
			"room_id": res.Stay.RoomID,
		}).Error("stay closed but room release failed")
		return billing.CloseResult{}, billing.Internal(op, err)
	}
	return res, nil
}
