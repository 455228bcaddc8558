package billing

import "context"

// RecordStore is the persistence the engine reads and writes through.
//
// Implementations return ErrNotFound-kind errors for missing records.
// UpdateStay must fail with an AlreadyClosed conflict when the stay already
// carries an actual check-out, so a SQL store can do it as one guarded UPDATE.
type RecordStore interface {
	GetStay(ctx context.Context, id uint) (Stay, error)
	UpdateStay(ctx context.Context, id uint, checkout StayCheckout) error
	GetRoom(ctx context.Context, id uint) (Room, error)

	GetBill(ctx context.Context, id uint) (Bill, error)
	FindBillByStay(ctx context.Context, stayID uint) (Bill, bool, error)
	CreateBill(ctx context.Context, bill *Bill) error
	UpdateBill(ctx context.Context, bill Bill) error

	CreateLineItem(ctx context.Context, item *LineItem) error
	ListLineItems(ctx context.Context, billID uint) ([]LineItem, error)

	CreatePayment(ctx context.Context, payment *Payment) error
	ListPayments(ctx context.Context, billID uint) ([]Payment, error)

	// Atomically runs fn against a store bound to a single transaction.
	Atomically(ctx context.Context, fn func(RecordStore) error) error
}

// Recorder receives billing events for metrics.
type Recorder interface {
	BillOpened()
	StayClosed(late bool)
	LineItemAdded(t ItemType)
	PaymentRecorded(method string)
}

type nopRecorder struct{}

func (nopRecorder) BillOpened()            {}
func (nopRecorder) StayClosed(bool)        {}
func (nopRecorder) LineItemAdded(ItemType) {}
func (nopRecorder) PaymentRecorded(string) {}
