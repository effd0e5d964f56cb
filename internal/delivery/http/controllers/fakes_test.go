package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventcoord/internal/delivery/http/helpers"
	"eventcoord/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeCoordinator implements domain.EventCoordinator for handler tests.
// err is returned by every method when set.
type fakeCoordinator struct {
	err error

	event     *domain.Event
	events    []*domain.Event
	total     int
	invite    *domain.EventInvite
	invites   []*domain.EventInvite
	rsvp      *domain.EventRSVP
	rsvps     []*domain.EventRSVP
	summary   domain.RSVPSummary
	staff     []*domain.Staff
	customer  *domain.Customer
	customers []*domain.Customer
	imported  domain.CustomerImport
	count     int

	lastCall       string
	lastEventID    string
	lastCustomerID string
	lastStaffID    string
	lastText       string
	lastVIP        bool
	lastAccepted   bool
	lastPartySize  int
	lastStatus     domain.EventStatus
	lastParams     domain.PaginationParams
	lastDate       time.Time
	lastCreate     domain.CreateEventInput
	lastOrders     []domain.OnlineOrder
}

func (f *fakeCoordinator) record(call, eventID string) {
	f.lastCall = call
	f.lastEventID = eventID
}

func (f *fakeCoordinator) CreateEvent(_ context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	f.record("CreateEvent", "")
	f.lastCreate = in
	return f.event, f.err
}

func (f *fakeCoordinator) GetEvent(_ context.Context, eventID string) (*domain.Event, error) {
	f.record("GetEvent", eventID)
	return f.event, f.err
}

func (f *fakeCoordinator) ListEvents(_ context.Context, status domain.EventStatus, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.record("ListEvents", "")
	f.lastStatus = status
	f.lastParams = params
	return f.events, f.total, f.err
}

func (f *fakeCoordinator) SubmitForApproval(_ context.Context, eventID string) (*domain.Event, error) {
	f.record("SubmitForApproval", eventID)
	return f.event, f.err
}

func (f *fakeCoordinator) ApproveEvent(_ context.Context, eventID string) (*domain.Event, error) {
	f.record("ApproveEvent", eventID)
	return f.event, f.err
}

func (f *fakeCoordinator) RejectEvent(_ context.Context, eventID, notes string) (*domain.Event, error) {
	f.record("RejectEvent", eventID)
	f.lastText = notes
	return f.event, f.err
}

func (f *fakeCoordinator) LockEvent(_ context.Context, eventID string) (*domain.Event, error) {
	f.record("LockEvent", eventID)
	return f.event, f.err
}

func (f *fakeCoordinator) CancelEvent(_ context.Context, eventID, reason string) (int, error) {
	f.record("CancelEvent", eventID)
	f.lastText = reason
	return f.count, f.err
}

func (f *fakeCoordinator) AddCustomerToInviteList(_ context.Context, eventID, customerID string, vip bool) (*domain.EventInvite, error) {
	f.record("AddCustomerToInviteList", eventID)
	f.lastCustomerID = customerID
	f.lastVIP = vip
	return f.invite, f.err
}

func (f *fakeCoordinator) RemoveCustomerFromInviteList(_ context.Context, eventID, customerID string) error {
	f.record("RemoveCustomerFromInviteList", eventID)
	f.lastCustomerID = customerID
	return f.err
}

func (f *fakeCoordinator) GetInviteList(_ context.Context, eventID string) ([]*domain.EventInvite, error) {
	f.record("GetInviteList", eventID)
	return f.invites, f.err
}

func (f *fakeCoordinator) SendInvites(_ context.Context, eventID string) (int, error) {
	f.record("SendInvites", eventID)
	return f.count, f.err
}

func (f *fakeCoordinator) ProcessRSVP(_ context.Context, eventID, customerID string, accepted bool, partySize int) (*domain.EventRSVP, error) {
	f.record("ProcessRSVP", eventID)
	f.lastCustomerID = customerID
	f.lastAccepted = accepted
	f.lastPartySize = partySize
	return f.rsvp, f.err
}

func (f *fakeCoordinator) GetRSVPSummary(_ context.Context, eventID string) (domain.RSVPSummary, error) {
	f.record("GetRSVPSummary", eventID)
	return f.summary, f.err
}

func (f *fakeCoordinator) GetWaitlist(_ context.Context, eventID string) ([]*domain.EventRSVP, error) {
	f.record("GetWaitlist", eventID)
	return f.rsvps, f.err
}

func (f *fakeCoordinator) AssignStaffToEvent(_ context.Context, eventID, staffID string) (*domain.Event, error) {
	f.record("AssignStaffToEvent", eventID)
	f.lastStaffID = staffID
	return f.event, f.err
}

func (f *fakeCoordinator) RemoveStaffFromEvent(_ context.Context, eventID, staffID string) (*domain.Event, error) {
	f.record("RemoveStaffFromEvent", eventID)
	f.lastStaffID = staffID
	return f.event, f.err
}

func (f *fakeCoordinator) ListStaff(context.Context) ([]*domain.Staff, error) {
	f.record("ListStaff", "")
	return f.staff, f.err
}

func (f *fakeCoordinator) GetAvailableStaff(_ context.Context, date time.Time) ([]*domain.Staff, error) {
	f.record("GetAvailableStaff", "")
	f.lastDate = date
	return f.staff, f.err
}

func (f *fakeCoordinator) RegisterCustomer(_ context.Context, name, email, phone string) (*domain.Customer, error) {
	f.record("RegisterCustomer", "")
	f.lastText = name + "|" + email + "|" + phone
	return f.customer, f.err
}

func (f *fakeCoordinator) ListCustomers(context.Context) ([]*domain.Customer, error) {
	f.record("ListCustomers", "")
	return f.customers, f.err
}

func (f *fakeCoordinator) ListEligibleCustomers(context.Context) ([]*domain.Customer, error) {
	f.record("ListEligibleCustomers", "")
	return f.customers, f.err
}

func (f *fakeCoordinator) ImportCustomersFromOrders(_ context.Context, orders []domain.OnlineOrder) (domain.CustomerImport, error) {
	f.record("ImportCustomersFromOrders", "")
	f.lastOrders = orders
	return f.imported, f.err
}

// newRequest builds a request with JSON body and path values set the way the router would.
func newRequest(method, target, body string, pathValues map[string]string) *http.Request {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// decodeEnvelope decodes the response into APIResponse, decoding data into dataOut when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dataOut any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dataOut != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, dataOut))
	}
	return raw.Error
}
