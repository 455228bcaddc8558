package billing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	advanceNote       = "Advance Payment at Check-in"
	billNumberRetries = 5
)

// Engine computes stay charges, keeps bill totals in sync with their line
// items and derives payment status. It holds no state besides its store.
type Engine struct {
	store    RecordStore
	atomic   bool
	clock    func() time.Time
	number   func(time.Time) string
	log      *logrus.Entry
	rec      Recorder
	validate *validator.Validate
}

type Option func(*Engine)

// WithAtomicWrites runs every multi-step operation inside one store transaction.
func WithAtomicWrites(on bool) Option { return func(e *Engine) { e.atomic = on } }

func WithClock(clock func() time.Time) Option { return func(e *Engine) { e.clock = clock } }

func WithLogger(l *logrus.Entry) Option { return func(e *Engine) { e.log = l } }

func WithRecorder(r Recorder) Option { return func(e *Engine) { e.rec = r } }

// WithBillNumbers replaces the INV-<millis>-<n> generator.
func WithBillNumbers(fn func(time.Time) string) Option { return func(e *Engine) { e.number = fn } }

func NewEngine(store RecordStore, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		clock:    time.Now,
		number:   DefaultBillNumber,
		log:      logrus.NewEntry(logrus.StandardLogger()),
		rec:      nopRecorder{},
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func DefaultBillNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%d", now.UnixMilli(), rand.Intn(1000))
}

func (e *Engine) run(ctx context.Context, fn func(RecordStore) error) error {
	if e.atomic {
		return e.store.Atomically(ctx, fn)
	}
	return fn(e.store)
}

// ----------------------------------------------------
// Open (check-in)
// ----------------------------------------------------

// Open creates the empty bill of a stay and records an optional advance.
func (e *Engine) Open(ctx context.Context, req OpenStayRequest) (Bill, error) {
	const op = "billing.open"
	if err := validateRequest(e.validate, op, req); err != nil {
		return Bill{}, err
	}
	if req.Advance.IsNegative() {
		return Bill{}, Validation(op, "advance must not be negative")
	}
	method := strings.ToUpper(strings.TrimSpace(req.AdvanceMethod))
	if method == "" {
		method = MethodCash
	}

	var out Bill
	err := e.run(ctx, func(st RecordStore) error {
		stay, err := st.GetStay(ctx, req.StayID)
		if err != nil {
			return err
		}
		bill, err := e.createBill(ctx, st, stay)
		if err != nil {
			return err
		}
		if req.Advance.IsPositive() {
			p := Payment{
				BillID: bill.ID,
				Amount: req.Advance,
				Method: method,
				Note:   advanceNote,
				PaidAt: e.clock(),
			}
			if err := st.CreatePayment(ctx, &p); err != nil {
				return err
			}
			e.rec.PaymentRecorded(method)
		}
		out, err = e.refreshStatus(ctx, st, bill, AdvanceStatus)
		return err
	})
	if err != nil {
		return Bill{}, wrap(op, err)
	}

	e.rec.BillOpened()
	e.log.WithFields(logrus.Fields{
		"stay_id":     req.StayID,
		"bill_id":     out.ID,
		"bill_number": out.Number,
		"advance":     req.Advance.String(),
		"status":      out.Status,
	}).Info("bill opened")
	return out, nil
}

// OpenWalkIn creates an empty bill for a guest without a stay, e.g. restaurant
// or service charges of a non-resident.
func (e *Engine) OpenWalkIn(ctx context.Context, guestID uint) (Bill, error) {
	const op = "billing.open_walk_in"
	if guestID == 0 {
		return Bill{}, Validation(op, "guest id is required")
	}
	var out Bill
	err := e.run(ctx, func(st RecordStore) error {
		var err error
		out, err = e.createBill(ctx, st, Stay{GuestID: guestID})
		return err
	})
	if err != nil {
		return Bill{}, wrap(op, err)
	}
	e.rec.BillOpened()
	e.log.WithFields(logrus.Fields{
		"guest_id":    guestID,
		"bill_id":     out.ID,
		"bill_number": out.Number,
	}).Info("walk-in bill opened")
	return out, nil
}

func (e *Engine) createBill(ctx context.Context, st RecordStore, stay Stay) (Bill, error) {
	var stayID *uint
	if stay.ID != 0 {
		id := stay.ID
		stayID = &id
	}
	var lastErr error
	for attempt := 0; attempt < billNumberRetries; attempt++ {
		now := e.clock()
		bill := Bill{
			Number:    e.number(now),
			GuestID:   stay.GuestID,
			StayID:    stayID,
			Subtotal:  decimal.Zero,
			Tax:       decimal.Zero,
			Total:     decimal.Zero,
			Status:    StatusUnpaid,
			CreatedAt: now,
		}
		err := st.CreateBill(ctx, &bill)
		if err == nil {
			return bill, nil
		}
		if !errors.Is(err, ErrConflict) {
			return Bill{}, err
		}
		lastErr = err
		e.log.WithField("attempt", attempt+1).Warn("bill number collision, retrying")
	}
	return Bill{}, lastErr
}

// ----------------------------------------------------
// AddCharge
// ----------------------------------------------------

// AddCharge appends a line item and recomputes the bill.
func (e *Engine) AddCharge(ctx context.Context, req AddChargeRequest) (Bill, error) {
	const op = "billing.add_charge"
	req.Type = ItemType(strings.ToUpper(string(req.Type)))
	if err := validateRequest(e.validate, op, req); err != nil {
		return Bill{}, err
	}
	if !req.UnitPrice.IsPositive() {
		return Bill{}, Validation(op, "unit price must be positive")
	}

	var out Bill
	err := e.run(ctx, func(st RecordStore) error {
		bill, err := st.GetBill(ctx, req.BillID)
		if err != nil {
			return err
		}
		item := LineItem{
			BillID:      bill.ID,
			Type:        req.Type,
			Description: strings.TrimSpace(req.Description),
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			Total:       req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
			RoomID:      req.RoomID,
			FoodID:      req.FoodID,
			ServiceID:   req.ServiceID,
			CreatedAt:   e.clock(),
		}
		if err := st.CreateLineItem(ctx, &item); err != nil {
			return err
		}
		out, err = e.recalculate(ctx, st, bill)
		return err
	})
	if err != nil {
		return Bill{}, wrap(op, err)
	}

	e.rec.LineItemAdded(req.Type)
	e.log.WithFields(logrus.Fields{
		"bill_id": out.ID,
		"type":    req.Type,
		"total":   out.Total.String(),
	}).Info("charge added")
	return out, nil
}

// Recalculate re-sums a bill's line items and payments.
func (e *Engine) Recalculate(ctx context.Context, billID uint) (Bill, error) {
	const op = "billing.recalculate"
	if billID == 0 {
		return Bill{}, Validation(op, "bill id is required")
	}
	var out Bill
	err := e.run(ctx, func(st RecordStore) error {
		bill, err := st.GetBill(ctx, billID)
		if err != nil {
			return err
		}
		out, err = e.recalculate(ctx, st, bill)
		return err
	})
	if err != nil {
		return Bill{}, wrap(op, err)
	}
	return out, nil
}

// ----------------------------------------------------
// Close (check-out)
// ----------------------------------------------------

// Close checks a stay out, appends room and late charges to its bill and
// recomputes totals. Releasing the room is left to the caller.
func (e *Engine) Close(ctx context.Context, req CloseStayRequest) (CloseResult, error) {
	const op = "billing.close"
	if err := validateRequest(e.validate, op, req); err != nil {
		return CloseResult{}, err
	}
	now := req.Now
	if now.IsZero() {
		now = e.clock()
	}

	var out CloseResult
	var nights int
	err := e.run(ctx, func(st RecordStore) error {
		stay, err := st.GetStay(ctx, req.StayID)
		if err != nil {
			return err
		}
		if stay.Closed() {
			return AlreadyClosed(op, stay.ID)
		}
		room, err := st.GetRoom(ctx, stay.RoomID)
		if err != nil {
			return err
		}

		rate := EffectiveRate(stay, room)
		late := IsLate(stay.ExpectedCheckOut, now)
		lateCharge := decimal.Zero
		if late {
			// late tiers follow the category price, not a negotiated rate
			lateCharge = LateCharge(stay.ExpectedCheckOut, now, room.BasePrice)
		}

		checkout := StayCheckout{ActualCheckOut: now, LateCheckout: late, LateCharges: lateCharge}
		if err := st.UpdateStay(ctx, stay.ID, checkout); err != nil {
			return err
		}
		stay.ActualCheckOut = &checkout.ActualCheckOut
		stay.LateCheckout = late
		stay.LateCharges = lateCharge

		bill, found, err := st.FindBillByStay(ctx, stay.ID)
		if err != nil {
			return err
		}
		if !found {
			e.log.WithField("stay_id", stay.ID).Warn("stay has no bill, creating one at checkout")
			if bill, err = e.createBill(ctx, st, stay); err != nil {
				return err
			}
		}

		nights = Nights(stay.CheckInAt, now)
		roomID := room.ID
		roomLine := LineItem{
			BillID:      bill.ID,
			Type:        ItemRoom,
			Description: RoomLineDescription(room, nights, stay.CustomRate),
			Quantity:    nights,
			UnitPrice:   rate,
			Total:       rate.Mul(decimal.NewFromInt(int64(nights))),
			RoomID:      &roomID,
			CreatedAt:   now,
		}
		if err := st.CreateLineItem(ctx, &roomLine); err != nil {
			return err
		}

		if lateCharge.IsPositive() {
			lateLine := LineItem{
				BillID:      bill.ID,
				Type:        ItemOther,
				Description: LateCheckoutDescription,
				Quantity:    1,
				UnitPrice:   lateCharge,
				Total:       lateCharge,
				CreatedAt:   now,
			}
			if err := st.CreateLineItem(ctx, &lateLine); err != nil {
				return err
			}
		}

		bill, err = e.recalculate(ctx, st, bill)
		if err != nil {
			return err
		}
		out = CloseResult{Stay: stay, Bill: bill}
		return nil
	})
	if err != nil {
		return CloseResult{}, wrap(op, err)
	}

	e.rec.StayClosed(out.Stay.LateCheckout)
	e.log.WithFields(logrus.Fields{
		"stay_id":      out.Stay.ID,
		"bill_id":      out.Bill.ID,
		"nights":       nights,
		"late":         out.Stay.LateCheckout,
		"late_charges": out.Stay.LateCharges.String(),
		"total":        out.Bill.Total.String(),
		"status":       out.Bill.Status,
	}).Info("stay closed")
	return out, nil
}

// ----------------------------------------------------
// RecordPayment
// ----------------------------------------------------

func (e *Engine) RecordPayment(ctx context.Context, req RecordPaymentRequest) (PaymentResult, error) {
	const op = "billing.record_payment"
	if err := validateRequest(e.validate, op, req); err != nil {
		return PaymentResult{}, err
	}
	if !req.Amount.IsPositive() {
		return PaymentResult{}, Validation(op, "amount must be positive")
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))

	var out PaymentResult
	err := e.run(ctx, func(st RecordStore) error {
		bill, err := st.GetBill(ctx, req.BillID)
		if err != nil {
			return err
		}
		p := Payment{
			BillID: bill.ID,
			Amount: req.Amount,
			Method: method,
			Note:   strings.TrimSpace(req.Note),
			PaidAt: e.clock(),
		}
		if err := st.CreatePayment(ctx, &p); err != nil {
			return err
		}
		bill, err = e.refreshStatus(ctx, st, bill, DeriveStatus)
		if err != nil {
			return err
		}
		paid := TotalPaid(bill.Payments)
		out = PaymentResult{
			Payment:   p,
			TotalPaid: paid,
			Remaining: bill.Total.Sub(paid),
			Status:    bill.Status,
		}
		return nil
	})
	if err != nil {
		return PaymentResult{}, wrap(op, err)
	}

	e.rec.PaymentRecorded(method)
	e.log.WithFields(logrus.Fields{
		"bill_id":    req.BillID,
		"amount":     req.Amount.String(),
		"method":     method,
		"total_paid": out.TotalPaid.String(),
		"remaining":  out.Remaining.String(),
		"status":     out.Status,
	}).Info("payment recorded")
	return out, nil
}

// ----------------------------------------------------
// helpers
// ----------------------------------------------------

func (e *Engine) recalculate(ctx context.Context, st RecordStore, bill Bill) (Bill, error) {
	items, err := st.ListLineItems(ctx, bill.ID)
	if err != nil {
		return Bill{}, err
	}
	bill.Items = items
	bill.Subtotal, bill.Tax, bill.Total = Totals(items)
	return e.refreshStatus(ctx, st, bill, DeriveStatus)
}

func (e *Engine) refreshStatus(ctx context.Context, st RecordStore, bill Bill, status func(paid, total decimal.Decimal) BillStatus) (Bill, error) {
	payments, err := st.ListPayments(ctx, bill.ID)
	if err != nil {
		return Bill{}, err
	}
	bill.Payments = payments
	bill.Status = status(TotalPaid(payments), bill.Total)
	if err := st.UpdateBill(ctx, bill); err != nil {
		return Bill{}, err
	}
	return bill, nil
}
