package domain

import (
	"context"
	"time"
)

// CreateEventInput holds the fields needed to create a DRAFT event.
type CreateEventInput struct {
	Name     string
	Venue    string
	Date     time.Time
	Cost     float64
	Capacity int
}

// EventCoordinator orchestrates the event lifecycle, invite list, RSVP admission,
// staff assignment and cancellation cascade.
type EventCoordinator interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context, status EventStatus, params PaginationParams) ([]*Event, int, error)

	SubmitForApproval(ctx context.Context, eventID string) (*Event, error)
	ApproveEvent(ctx context.Context, eventID string) (*Event, error)
	RejectEvent(ctx context.Context, eventID, notes string) (*Event, error)
	LockEvent(ctx context.Context, eventID string) (*Event, error)
	// CancelEvent returns the number of customers notified.
	CancelEvent(ctx context.Context, eventID, reason string) (int, error)

	AddCustomerToInviteList(ctx context.Context, eventID, customerID string, vip bool) (*EventInvite, error)
	RemoveCustomerFromInviteList(ctx context.Context, eventID, customerID string) error
	GetInviteList(ctx context.Context, eventID string) ([]*EventInvite, error)
	// SendInvites returns the number of invites sent by this call.
	SendInvites(ctx context.Context, eventID string) (int, error)

	ProcessRSVP(ctx context.Context, eventID, customerID string, accepted bool, partySize int) (*EventRSVP, error)
	GetRSVPSummary(ctx context.Context, eventID string) (RSVPSummary, error)
	GetWaitlist(ctx context.Context, eventID string) ([]*EventRSVP, error)

	AssignStaffToEvent(ctx context.Context, eventID, staffID string) (*Event, error)
	RemoveStaffFromEvent(ctx context.Context, eventID, staffID string) (*Event, error)
	ListStaff(ctx context.Context) ([]*Staff, error)
	GetAvailableStaff(ctx context.Context, date time.Time) ([]*Staff, error)

	RegisterCustomer(ctx context.Context, name, email, phone string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	ListEligibleCustomers(ctx context.Context) ([]*Customer, error)
	// ImportCustomersFromOrders registers the buyer of every order, deduplicated by email.
	ImportCustomersFromOrders(ctx context.Context, orders []OnlineOrder) (CustomerImport, error)
}
