// Package billingtest provides an in-memory billing.RecordStore for tests.
package billingtest

import (
	"context"
	"sort"
	"sync"

	"hotel-backoffice/billing"
)

type state struct {
	stays    map[uint]billing.Stay
	rooms    map[uint]billing.Room
	bills    map[uint]billing.Bill
	items    map[uint]billing.LineItem
	payments map[uint]billing.Payment
	seq      uint
	numbers  map[string]struct{}
}

func (s *state) clone() *state {
	c := &state{
		stays:    make(map[uint]billing.Stay, len(s.stays)),
		rooms:    make(map[uint]billing.Room, len(s.rooms)),
		bills:    make(map[uint]billing.Bill, len(s.bills)),
		items:    make(map[uint]billing.LineItem, len(s.items)),
		payments: make(map[uint]billing.Payment, len(s.payments)),
		numbers:  make(map[string]struct{}, len(s.numbers)),
		seq:      s.seq,
	}
	for k, v := range s.stays {
		c.stays[k] = v
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.bills {
		c.bills[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k := range s.numbers {
		c.numbers[k] = struct{}{}
	}
	return c
}

// MemStore keeps records in maps. Atomically works on a copy that is only
// published when the callback succeeds.
type MemStore struct {
	mu    sync.Mutex
	st    *state
	fails map[string]error
}

func NewMemStore() *MemStore {
	return &MemStore{
		st: &state{
			stays:    map[uint]billing.Stay{},
			rooms:    map[uint]billing.Room{},
			bills:    map[uint]billing.Bill{},
			items:    map[uint]billing.LineItem{},
			payments: map[uint]billing.Payment{},
			numbers:  map[string]struct{}{},
		},
		fails: map[string]error{},
	}
}

// FailOn makes the next call of the named method return err.
func (m *MemStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fails[method] = err
}

func (m *MemStore) fail(method string) error {
	if err, ok := m.fails[method]; ok {
		delete(m.fails, method)
		return err
	}
	return nil
}

func (m *MemStore) next() uint {
	m.st.seq++
	return m.st.seq
}

// PutRoom and PutStay seed fixtures; zero IDs are assigned.
func (m *MemStore) PutRoom(r billing.Room) billing.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.next()
	}
	m.st.rooms[r.ID] = r
	return r
}

func (m *MemStore) PutStay(s billing.Stay) billing.Stay {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == 0 {
		s.ID = m.next()
	}
	m.st.stays[s.ID] = s
	return s
}

func (m *MemStore) BillCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.bills)
}

func (m *MemStore) ItemCount(billID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.st.items {
		if it.BillID == billID {
			n++
		}
	}
	return n
}

func (m *MemStore) PaymentCount(billID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.st.payments {
		if p.BillID == billID {
			n++
		}
	}
	return n
}

// ----------------------------------------------------
// billing.RecordStore
// ----------------------------------------------------

func (m *MemStore) GetStay(_ context.Context, id uint) (billing.Stay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetStay"); err != nil {
		return billing.Stay{}, err
	}
	s, ok := m.st.stays[id]
	if !ok {
		return billing.Stay{}, billing.NotFound("memstore.get_stay", "stay", id)
	}
	return s, nil
}

func (m *MemStore) UpdateStay(_ context.Context, id uint, c billing.StayCheckout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateStay"); err != nil {
		return err
	}
	s, ok := m.st.stays[id]
	if !ok {
		return billing.NotFound("memstore.update_stay", "stay", id)
	}
	if s.ActualCheckOut != nil {
		return billing.AlreadyClosed("memstore.update_stay", id)
	}
	at := c.ActualCheckOut
	s.ActualCheckOut = &at
	s.LateCheckout = c.LateCheckout
	s.LateCharges = c.LateCharges
	m.st.stays[id] = s
	return nil
}

func (m *MemStore) GetRoom(_ context.Context, id uint) (billing.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.st.rooms[id]
	if !ok {
		return billing.Room{}, billing.NotFound("memstore.get_room", "room", id)
	}
	return r, nil
}

func (m *MemStore) GetBill(_ context.Context, id uint) (billing.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.st.bills[id]
	if !ok {
		return billing.Bill{}, billing.NotFound("memstore.get_bill", "bill", id)
	}
	return b, nil
}

func (m *MemStore) FindBillByStay(_ context.Context, stayID uint) (billing.Bill, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found []billing.Bill
	for _, b := range m.st.bills {
		if b.StayID != nil && *b.StayID == stayID {
			found = append(found, b)
		}
	}
	if len(found) == 0 {
		return billing.Bill{}, false, nil
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found[0], true, nil
}

func (m *MemStore) CreateBill(_ context.Context, b *billing.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateBill"); err != nil {
		return err
	}
	if _, dup := m.st.numbers[b.Number]; dup {
		return billing.Conflict("memstore.create_bill", "bill number %s exists", b.Number)
	}
	b.ID = m.next()
	stored := *b
	stored.Items, stored.Payments = nil, nil
	m.st.bills[b.ID] = stored
	m.st.numbers[b.Number] = struct{}{}
	return nil
}

func (m *MemStore) UpdateBill(_ context.Context, b billing.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateBill"); err != nil {
		return err
	}
	cur, ok := m.st.bills[b.ID]
	if !ok {
		return billing.NotFound("memstore.update_bill", "bill", b.ID)
	}
	cur.Subtotal, cur.Tax, cur.Total, cur.Status = b.Subtotal, b.Tax, b.Total, b.Status
	m.st.bills[b.ID] = cur
	return nil
}

func (m *MemStore) CreateLineItem(_ context.Context, it *billing.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateLineItem"); err != nil {
		return err
	}
	if _, ok := m.st.bills[it.BillID]; !ok {
		return billing.NotFound("memstore.create_line_item", "bill", it.BillID)
	}
	it.ID = m.next()
	m.st.items[it.ID] = *it
	return nil
}

func (m *MemStore) ListLineItems(_ context.Context, billID uint) ([]billing.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []billing.LineItem{}
	for _, it := range m.st.items {
		if it.BillID == billID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) CreatePayment(_ context.Context, p *billing.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreatePayment"); err != nil {
		return err
	}
	if _, ok := m.st.bills[p.BillID]; !ok {
		return billing.NotFound("memstore.create_payment", "bill", p.BillID)
	}
	p.ID = m.next()
	m.st.payments[p.ID] = *p
	return nil
}

func (m *MemStore) ListPayments(_ context.Context, billID uint) ([]billing.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []billing.Payment{}
	for _, p := range m.st.payments {
		if p.BillID == billID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Atomically runs fn on a snapshot and publishes it only if fn succeeds.
func (m *MemStore) Atomically(ctx context.Context, fn func(billing.RecordStore) error) error {
	m.mu.Lock()
	snapshot := m.st.clone()
	tx := &MemStore{st: snapshot, fails: m.fails}
	m.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	m.mu.Lock()
	m.st = snapshot
	m.mu.Unlock()
	return nil
}
