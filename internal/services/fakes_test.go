package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"eventcoord/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

var showDay = time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	c.StaffIDs = slices.Clone(e.StaffIDs)
	return &c
}

// fakeEventRepo is an in-memory EventRepository with the same version semantics as Postgres.
type fakeEventRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Event
	order     []string
	updateErr error
	updates   int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) put(e *domain.Event) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.Version == 0 {
		e.Version = 1
	}
	if e.StaffIDs == nil {
		e.StaffIDs = []string{}
	}
	f.byID[e.ID] = cloneEvent(e)
	f.order = append(f.order, e.ID)
	return e
}

func (f *fakeEventRepo) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	byID := make(map[string]*domain.Event, len(f.byID))
	for id, e := range f.byID {
		byID[id] = cloneEvent(e)
	}
	order := slices.Clone(f.order)
	updates := f.updates
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.byID, f.order, f.updates = byID, order, updates
	}
}

func (f *fakeEventRepo) stored(id string) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneEvent(f.byID[id])
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.put(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		return cloneEvent(e), nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, status domain.EventStatus, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*domain.Event
	for _, id := range f.order {
		e := f.byID[id]
		if status == "" || e.Status == status {
			all = append(all, cloneEvent(e))
		}
	}
	total := len(all)
	if params.Unbounded() {
		return all, total, nil
	}
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)
	return all[start:end], total, nil
}

func (f *fakeEventRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Event{}
	for _, id := range f.order {
		if e := f.byID[id]; e.OnDate(date) {
			out = append(out, cloneEvent(e))
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	cur, ok := f.byID[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != e.Version {
		return domain.ErrConflict
	}
	e.Version++
	f.byID[e.ID] = cloneEvent(e)
	f.updates++
	return nil
}

// fakeCustomerRepo is an in-memory CustomerRepository.
type fakeCustomerRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Customer
	order     []string
	getErr    error
	listErr   error
	createErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: make(map[string]*domain.Customer)}
}

func (f *fakeCustomerRepo) add(id, name, email string) *domain.Customer {
	c := &domain.Customer{ID: id, Name: name, Email: email}
	_ = f.Create(context.Background(), c)
	return c
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == c.Email {
			return domain.ErrDuplicateCustomer
		}
	}
	cp := *c
	f.byID[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCustomerRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.Customer{}
	for _, id := range f.order {
		cp := *f.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

// fakeInviteRepo is an in-memory InviteRepository keeping insertion order.
type fakeInviteRepo struct {
	mu          sync.Mutex
	invites     []*domain.EventInvite
	markSentErr error
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{}
}

func (f *fakeInviteRepo) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	invites := make([]*domain.EventInvite, len(f.invites))
	for i, inv := range f.invites {
		cp := *inv
		invites[i] = &cp
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.invites = invites
	}
}

func (f *fakeInviteRepo) Create(ctx context.Context, inv *domain.EventInvite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.invites {
		if existing.EventID == inv.EventID && existing.CustomerID == inv.CustomerID {
			return domain.ErrDuplicateInvite
		}
	}
	cp := *inv
	f.invites = append(f.invites, &cp)
	return nil
}

func (f *fakeInviteRepo) GetByEventAndCustomer(ctx context.Context, eventID, customerID string) (*domain.EventInvite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invites {
		if inv.EventID == eventID && inv.CustomerID == customerID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventInvite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.EventInvite{}
	for _, inv := range f.invites {
		if inv.EventID == eventID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInviteRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markSentErr != nil {
		return f.markSentErr
	}
	for _, inv := range f.invites {
		if inv.ID == id {
			at := sentAt
			inv.SentAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInviteRepo) DeleteUnsent(ctx context.Context, eventID, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, inv := range f.invites {
		if inv.EventID == eventID && inv.CustomerID == customerID && !inv.IsSent() {
			f.invites = slices.Delete(f.invites, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeRSVPRepo is an in-memory RSVPRepository ordered by creation.
type fakeRSVPRepo struct {
	mu        sync.Mutex
	rsvps     []*domain.EventRSVP
	createErr error
	updateErr error
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{}
}

func (f *fakeRSVPRepo) snapshot() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	rsvps := make([]*domain.EventRSVP, len(f.rsvps))
	for i, r := range f.rsvps {
		cp := *r
		rsvps[i] = &cp
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.rsvps = rsvps
	}
}

func (f *fakeRSVPRepo) Create(ctx context.Context, r *domain.EventRSVP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.rsvps {
		if existing.EventID == r.EventID && existing.CustomerID == r.CustomerID {
			return errors.New("duplicate rsvp")
		}
	}
	cp := *r
	f.rsvps = append(f.rsvps, &cp)
	return nil
}

func (f *fakeRSVPRepo) GetByEventAndCustomer(ctx context.Context, eventID, customerID string) (*domain.EventRSVP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rsvps {
		if r.EventID == eventID && r.CustomerID == customerID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) Update(ctx context.Context, r *domain.EventRSVP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, existing := range f.rsvps {
		if existing.ID == r.ID {
			cp := *r
			f.rsvps[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRSVPRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRSVP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.EventRSVP{}
	for _, r := range f.rsvps {
		if r.EventID == eventID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRSVPRepo) byCustomer(customerID string) *domain.EventRSVP {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rsvps {
		if r.CustomerID == customerID {
			cp := *r
			return &cp
		}
	}
	return nil
}

// fakeStaffDirectory is an in-memory StaffDirectory. Staff listed in busy report unavailable.
type fakeStaffDirectory struct {
	staff []*domain.Staff
	busy  map[string]bool
}

func newFakeStaffDirectory(staff ...*domain.Staff) *fakeStaffDirectory {
	return &fakeStaffDirectory{staff: staff, busy: make(map[string]bool)}
}

func (f *fakeStaffDirectory) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	for _, s := range f.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStaffDirectory) List(ctx context.Context) ([]*domain.Staff, error) {
	return f.staff, nil
}

func (f *fakeStaffDirectory) IsAvailable(ctx context.Context, id string) (bool, error) {
	return !f.busy[id], nil
}

type expense struct {
	eventID string
	amount  float64
}

// mockLedger is a testify mock for FinanceLedger that also keeps the expenses it accepted,
// so rolled back transactions can be observed.
type mockLedger struct {
	mock.Mock
	mu       sync.Mutex
	expenses []expense
}

func (m *mockLedger) AddExpense(ctx context.Context, eventID string, amount float64, memo string) error {
	args := m.Called(ctx, eventID, amount, memo)
	if err := args.Error(0); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = append(m.expenses, expense{eventID: eventID, amount: amount})
	return nil
}

func (m *mockLedger) booked() []expense {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.expenses)
}

func (m *mockLedger) snapshot() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	expenses := slices.Clone(m.expenses)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.expenses = expenses
	}
}

// snapshotter captures a fake's state and returns a func restoring it.
type snapshotter interface {
	snapshot() func()
}

// fakeTransactor serializes transactions and restores every store when fn fails.
type fakeTransactor struct {
	mu      sync.Mutex
	stores  []snapshotter
	commits int
	aborts  int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	restores := make([]func(), 0, len(f.stores))
	for _, st := range f.stores {
		restores = append(restores, st.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		f.aborts++
		return err
	}
	f.commits++
	return nil
}

// fakeNotifier records delivered notifications per kind. Customers in failFor are rejected.
type fakeNotifier struct {
	mu      sync.Mutex
	calls   map[string][]string
	vip     map[string]bool
	failFor map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		calls:   make(map[string][]string),
		vip:     make(map[string]bool),
		failFor: make(map[string]bool),
	}
}

func (f *fakeNotifier) record(kind string, customer *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[customer.ID] {
		return fmt.Errorf("mailbox for %s rejected message", customer.Email)
	}
	f.calls[kind] = append(f.calls[kind], customer.ID)
	return nil
}

func (f *fakeNotifier) sent(kind string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls[kind])
}

func (f *fakeNotifier) SendInvitation(ctx context.Context, event *domain.Event, customer *domain.Customer, vip bool) error {
	if err := f.record(NotificationInvitation, customer); err != nil {
		return err
	}
	f.mu.Lock()
	f.vip[customer.ID] = vip
	f.mu.Unlock()
	return nil
}

func (f *fakeNotifier) SendRSVPConfirmation(ctx context.Context, event *domain.Event, customer *domain.Customer, rsvp *domain.EventRSVP) error {
	return f.record(NotificationRSVPConfirmation, customer)
}

func (f *fakeNotifier) SendWaitlistNotice(ctx context.Context, event *domain.Event, customer *domain.Customer, rsvp *domain.EventRSVP) error {
	return f.record(NotificationWaitlist, customer)
}

func (f *fakeNotifier) SendCancellationNotice(ctx context.Context, event *domain.Event, customer *domain.Customer) error {
	return f.record(NotificationCancellation, customer)
}

// fakeMetrics counts observations.
type fakeMetrics struct {
	mu            sync.Mutex
	notifications map[string]int
	rsvps         map[domain.RSVPStatus]int
	transitions   map[domain.EventStatus]int
	assignments   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		notifications: make(map[string]int),
		rsvps:         make(map[domain.RSVPStatus]int),
		transitions:   make(map[domain.EventStatus]int),
		assignments:   make(map[string]int),
	}
}

func (f *fakeMetrics) ObserveNotification(kind string, delivered bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications[fmt.Sprintf("%s/%t", kind, delivered)]++
}

func (f *fakeMetrics) ObserveRSVP(status domain.RSVPStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rsvps[status]++
}

func (f *fakeMetrics) ObserveTransition(status domain.EventStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions[status]++
}

func (f *fakeMetrics) ObserveStaffAssignment(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignments[result]++
}

// fixture wires a coordinator to in-memory collaborators with a fixed clock and sequential ids.
type fixture struct {
	tx        *fakeTransactor
	events    *fakeEventRepo
	customers *fakeCustomerRepo
	invites   *fakeInviteRepo
	rsvps     *fakeRSVPRepo
	staff     *fakeStaffDirectory
	ledger    *mockLedger
	notifier  *fakeNotifier
	metrics   *fakeMetrics
	svc       domain.EventCoordinator
}

func newFixture(t *testing.T, staff ...*domain.Staff) *fixture {
	t.Helper()
	f := &fixture{
		events:    newFakeEventRepo(),
		customers: newFakeCustomerRepo(),
		invites:   newFakeInviteRepo(),
		rsvps:     newFakeRSVPRepo(),
		staff:     newFakeStaffDirectory(staff...),
		ledger:    &mockLedger{},
		notifier:  newFakeNotifier(),
		metrics:   newFakeMetrics(),
	}
	f.tx = &fakeTransactor{stores: []snapshotter{f.events, f.invites, f.rsvps, f.ledger}}
	var (
		idMu sync.Mutex
		seq  int
	)
	f.svc = NewEventCoordinator(CoordinatorDeps{
		Tx:        f.tx,
		Events:    f.events,
		Customers: f.customers,
		Invites:   f.invites,
		RSVPs:     f.rsvps,
		Staff:     f.staff,
		Ledger:    f.ledger,
		Notifier:  f.notifier,
		Metrics:   f.metrics,
		Logger:    testLogger,
		Now:       func() time.Time { return testNow },
		NewID: func() string {
			idMu.Lock()
			defer idMu.Unlock()
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}, 5*time.Second)
	return f
}

// seedEvent stores an event in the given status.
func (f *fixture) seedEvent(id string, status domain.EventStatus, capacity int, staffIDs ...string) *domain.Event {
	return f.events.put(&domain.Event{
		ID:       id,
		Name:     "Spring Show " + id,
		Venue:    "Hall A",
		Date:     showDay,
		Cost:     100,
		Capacity: capacity,
		Status:   status,
		StaffIDs: staffIDs,
	})
}

// seedSentInvites puts customers on the invite list and sends their invites.
func (f *fixture) seedSentInvites(t *testing.T, eventID string, customerIDs ...string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range customerIDs {
		if _, err := f.customers.GetByID(ctx, id); err != nil {
			f.customers.add(id, "Customer "+id, id+"@example.com")
		}
		if _, err := f.svc.AddCustomerToInviteList(ctx, eventID, id, false); err != nil {
			t.Fatalf("add %s to invite list: %v", id, err)
		}
	}
	if _, err := f.svc.SendInvites(ctx, eventID); err != nil {
		t.Fatalf("send invites: %v", err)
	}
}
