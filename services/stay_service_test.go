package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backoffice/billing"
	"hotel-backoffice/billing/billingtest"
	"hotel-backoffice/models"
)

var checkInAt = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

type stayFixture struct {
	svc   *StayService
	mock  sqlmock.Sqlmock
	store *billingtest.MemStore
	hook  *test.Hook
}

func newStayFixture(t *testing.T) *stayFixture {
	t.Helper()
	db, mock := newMockDB(t)
	logger, hook := test.NewNullLogger()
	store := billingtest.NewMemStore()
	engine := billing.NewEngine(store,
		billing.WithLogger(logrus.NewEntry(logger)),
		billing.WithClock(func() time.Time { return checkInAt }),
	)
	svc := NewStayService(db, engine, logrus.NewEntry(logger))
	svc.Clock = func() time.Time { return checkInAt }
	return &stayFixture{svc: svc, mock: mock, store: store, hook: hook}
}

func (f *stayFixture) expectReservation(id, guestID, roomID uint, status string, advance string) {
	rows := sqlmock.NewRows([]string{"id", "guest_id", "room_id", "expected_check_out", "advance_payment", "status"}).
		AddRow(id, guestID, roomID, checkInAt.Add(48*time.Hour), advance, status)
	f.mock.ExpectQuery("SELECT \\* FROM `reservations`").WillReturnRows(rows)
}

func (f *stayFixture) expectGuestAndRoom(guestID, roomID uint, roomStatus string) {
	f.mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(guestID, "Ali Raza"))
	f.mock.ExpectQuery("SELECT \\* FROM `rooms` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status", "category_id"}).AddRow(roomID, "101", roomStatus, 1))
}

func TestCheckInFromReservation(t *testing.T) {
	f := newStayFixture(t)
	resID := uint(5)
	f.store.PutStay(billing.Stay{ID: 9, GuestID: 2, RoomID: 3, CheckInAt: checkInAt, ExpectedCheckOut: checkInAt.Add(48 * time.Hour)})

	f.expectReservation(resID, 2, 3, models.ReservationReserved, "1000.00")
	f.mock.ExpectBegin()
	f.expectGuestAndRoom(2, 3, models.RoomBooked)
	f.mock.ExpectExec("INSERT INTO `stays`").WillReturnResult(sqlmock.NewResult(9, 1))
	f.mock.ExpectExec("UPDATE `rooms` SET").
		WithArgs(models.RoomOccupied, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("UPDATE `reservations` SET").
		WithArgs(models.ReservationCheckedIn, sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	stay, err := f.svc.checkIn(context.Background(), CheckInInput{ReservationID: &resID})
	require.NoError(t, err)
	assert.Equal(t, uint(9), stay.ID)
	assert.Equal(t, uint(2), stay.GuestID)
	assert.Equal(t, uint(3), stay.RoomID)
	assert.Equal(t, checkInAt.Add(48*time.Hour), stay.ExpectedCheckOut)
	assert.NoError(t, f.mock.ExpectationsWereMet())

	bill, found, err := f.store.FindBillByStay(context.Background(), 9)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, billing.StatusPartiallyPaid, bill.Status)
	assert.Equal(t, 1, f.store.PaymentCount(bill.ID))
}

func TestCheckInRejectsUnavailableRoom(t *testing.T) {
	for _, status := range []string{models.RoomOccupied, models.RoomMaintenance} {
		t.Run(status, func(t *testing.T) {
			f := newStayFixture(t)
			expected := checkInAt.Add(24 * time.Hour)

			f.mock.ExpectBegin()
			f.expectGuestAndRoom(2, 3, status)
			f.mock.ExpectRollback()

			_, err := f.svc.checkIn(context.Background(), CheckInInput{GuestID: 2, RoomID: 3, ExpectedCheckOut: &expected})
			assert.ErrorIs(t, err, billing.ErrConflict)
			assert.NoError(t, f.mock.ExpectationsWereMet())
			assert.Equal(t, 0, f.store.BillCount())
		})
	}
}

func TestCheckInRejectsClosedReservation(t *testing.T) {
	f := newStayFixture(t)
	resID := uint(5)
	f.expectReservation(resID, 2, 3, models.ReservationCancelled, "0")

	_, err := f.svc.checkIn(context.Background(), CheckInInput{ReservationID: &resID})
	assert.ErrorIs(t, err, billing.ErrConflict)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCheckInKeepsStayWhenBillCannotOpen(t *testing.T) {
	f := newStayFixture(t)
	expected := checkInAt.Add(24 * time.Hour)
	advance := decimal.NewFromInt(500)

	f.mock.ExpectBegin()
	f.expectGuestAndRoom(2, 3, models.RoomAvailable)
	f.mock.ExpectExec("INSERT INTO `stays`").WillReturnResult(sqlmock.NewResult(9, 1))
	f.mock.ExpectExec("UPDATE `rooms` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	// the engine store has no stay 9, so opening the bill fails
	stay, err := f.svc.checkIn(context.Background(), CheckInInput{
		GuestID:          2,
		RoomID:           3,
		ExpectedCheckOut: &expected,
		AdvancePayment:   &advance,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), stay.ID)
	assert.Equal(t, 0, f.store.BillCount())
	assert.NoError(t, f.mock.ExpectationsWereMet())

	var warned bool
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "opening bill at check-in failed" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func (f *stayFixture) openStay(t *testing.T, reservationID *uint) billing.Stay {
	t.Helper()
	f.store.PutRoom(billing.Room{ID: 3, Number: "101", CategoryName: "Deluxe Room", BasePrice: decimal.NewFromInt(7500)})
	stay := f.store.PutStay(billing.Stay{
		ID:               9,
		GuestID:          2,
		RoomID:           3,
		ReservationID:    reservationID,
		CheckInAt:        checkInAt,
		ExpectedCheckOut: checkInAt.Add(24 * time.Hour),
		LateCharges:      decimal.Zero,
	})
	_, err := f.svc.Engine.Open(context.Background(), billing.OpenStayRequest{StayID: stay.ID})
	require.NoError(t, err)
	return stay
}

func TestCheckOutReleasesRoomOnce(t *testing.T) {
	f := newStayFixture(t)
	resID := uint(5)
	f.openStay(t, &resID)
	now := checkInAt.Add(24 * time.Hour)

	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE `rooms` SET").
		WithArgs(models.RoomAvailable, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("UPDATE `reservations` SET").
		WithArgs(models.ReservationCheckedOut, sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	res, err := f.svc.checkOut(context.Background(), 9, now)
	require.NoError(t, err)
	require.NotNil(t, res.Stay.ActualCheckOut)
	assert.True(t, res.Bill.Total.Equal(decimal.NewFromInt(7875)))
	assert.NoError(t, f.mock.ExpectationsWereMet())

	// no further SQL is expected: a second checkout must not touch the room
	_, err = f.svc.checkOut(context.Background(), 9, now.Add(time.Hour))
	assert.ErrorIs(t, err, billing.ErrAlreadyClosed)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCheckOutWithoutReservation(t *testing.T) {
	f := newStayFixture(t)
	f.openStay(t, nil)

	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE `rooms` SET").
		WithArgs(models.RoomAvailable, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	_, err := f.svc.checkOut(context.Background(), 9, checkInAt.Add(24*time.Hour))
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCheckOutRoomReleaseFailure(t *testing.T) {
	f := newStayFixture(t)
	f.openStay(t, nil)

	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE `rooms` SET").WillReturnError(errors.New("connection reset"))
	f.mock.ExpectRollback()

	_, err := f.svc.checkOut(context.Background(), 9, checkInAt.Add(24*time.Hour))
	assert.ErrorIs(t, err, billing.ErrInternal)
	assert.NoError(t, f.mock.ExpectationsWereMet())

	stay, err := f.store.GetStay(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, stay.Closed())
}
