package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an Event.
type EventStatus string

const (
	EventStatusDraft           EventStatus = "DRAFT"
	EventStatusPendingApproval EventStatus = "PENDING_APPROVAL"
	EventStatusApproved        EventStatus = "APPROVED"
	EventStatusLocked          EventStatus = "LOCKED"
	EventStatusCancelled       EventStatus = "CANCELLED"
)

// ParseEventStatus parses a status name case-insensitively.
func ParseEventStatus(s string) (EventStatus, error) {
	st := EventStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case EventStatusDraft, EventStatusPendingApproval, EventStatusApproved, EventStatusLocked, EventStatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown event status %q", ErrInvalidInput, s)
}

// upfrontCostRatio is the share of projected ticket revenue booked as an expense on approval.
const upfrontCostRatio = 0.3

// Event is a company-run event (fashion show, promotional gathering).
// swagger:model Event
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Venue     string      `json:"venue"`
	Date      time.Time   `json:"date"`
	Cost      float64     `json:"cost"`
	Capacity  int         `json:"capacity"`
	Status    EventStatus `json:"status"`
	RSVPCount int         `json:"rsvp_count"`
	StaffIDs  []string    `json:"staff_ids"`
	Notes     string      `json:"notes,omitempty"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewEvent returns a DRAFT event. ID is set by the caller before persisting.
func NewEvent(name, venue string, date time.Time, cost float64, capacity int) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", ErrInvalidInput)
	}
	return &Event{
		Name:     name,
		Venue:    strings.TrimSpace(venue),
		Date:     Day(date),
		Cost:     cost,
		Capacity: capacity,
		Status:   EventStatusDraft,
		StaffIDs: []string{},
	}, nil
}

// Day truncates t to midnight UTC of its calendar day. Events on the same Day share a date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OnDate reports whether the event takes place on the calendar day of t.
func (e *Event) OnDate(t time.Time) bool {
	return Day(e.Date).Equal(Day(t))
}

// IsFinanciallyApproved reports whether finance has cleared the event (APPROVED or LOCKED).
func (e *Event) IsFinanciallyApproved() bool {
	return e.Status == EventStatusApproved || e.Status == EventStatusLocked
}

// UpfrontCost is the expense booked against the ledger when the event is approved.
func (e *Event) UpfrontCost() float64 {
	return e.Cost * float64(e.Capacity) * upfrontCostRatio
}

// Submit moves a DRAFT event to PENDING_APPROVAL.
func (e *Event) Submit() error {
	if e.Status != EventStatusDraft {
		return invalidTransition("submit", "not in draft", e.Status)
	}
	e.Status = EventStatusPendingApproval
	return nil
}

// Approve moves a pending event to APPROVED. Booking UpfrontCost is the caller's job.
func (e *Event) Approve() error {
	if e.Status != EventStatusPendingApproval {
		return invalidTransition("approve", "not pending approval", e.Status)
	}
	e.Status = EventStatusApproved
	return nil
}

// Reject sends a pending event back to DRAFT with the given notes.
func (e *Event) Reject(notes string) error {
	if e.Status != EventStatusPendingApproval {
		return invalidTransition("reject", "not pending approval", e.Status)
	}
	e.Status = EventStatusDraft
	e.Notes = notes
	return nil
}

// Lock requires financial approval and at least one assigned staff member.
func (e *Event) Lock() error {
	if !e.IsFinanciallyApproved() {
		return invalidTransition("lock", "not financially approved", e.Status)
	}
	if len(e.StaffIDs) == 0 {
		return invalidTransition("lock", "has no assigned staff", e.Status)
	}
	e.Status = EventStatusLocked
	return nil
}

// Cancel is allowed from every status except CANCELLED and records reason in Notes.
func (e *Event) Cancel(reason string) error {
	if e.Status == EventStatusCancelled {
		return invalidTransition("cancel", "already cancelled", e.Status)
	}
	e.Status = EventStatusCancelled
	e.Notes = reason
	return nil
}

// CheckInvitesOpen returns an error when the invite list can no longer change.
func (e *Event) CheckInvitesOpen() error {
	switch e.Status {
	case EventStatusLocked:
		return invalidTransition("invite", "is locked", e.Status)
	case EventStatusCancelled:
		return invalidTransition("invite", "is cancelled", e.Status)
	}
	return nil
}

// CheckStaffingOpen returns an error when staff assignments can no longer change.
func (e *Event) CheckStaffingOpen() error {
	switch e.Status {
	case EventStatusLocked:
		return invalidTransition("assign staff", "is locked", e.Status)
	case EventStatusCancelled:
		return invalidTransition("assign staff", "is cancelled", e.Status)
	}
	return nil
}

// CheckInvitesSendable returns an error unless finance has cleared the event.
func (e *Event) CheckInvitesSendable() error {
	if !e.IsFinanciallyApproved() {
		return invalidTransition("send invites", "not financially approved", e.Status)
	}
	return nil
}

// CheckRSVPOpen returns an error when responses can no longer be recorded.
func (e *Event) CheckRSVPOpen() error {
	if e.Status == EventStatusCancelled {
		return invalidTransition("rsvp", "is cancelled", e.Status)
	}
	return nil
}

func (e *Event) HasStaff(staffID string) bool {
	return slices.Contains(e.StaffIDs, staffID)
}

// AssignStaff adds staffID to the assigned set. It reports false when already present.
func (e *Event) AssignStaff(staffID string) bool {
	if e.HasStaff(staffID) {
		return false
	}
	e.StaffIDs = append(e.StaffIDs, staffID)
	return true
}

// RemoveStaff reports false when staffID was not assigned.
func (e *Event) RemoveStaff(staffID string) bool {
	i := slices.Index(e.StaffIDs, staffID)
	if i < 0 {
		return false
	}
	e.StaffIDs = slices.Delete(e.StaffIDs, i, i+1)
	return true
}

// HasCapacityFor reports whether partySize more guests fit.
func (e *Event) HasCapacityFor(partySize int) bool {
	return e.RSVPCount+partySize <= e.Capacity
}

// Admit books partySize seats. Callers check HasCapacityFor first; Admit never exceeds capacity.
func (e *Event) Admit(partySize int) error {
	if partySize < 1 || !e.HasCapacityFor(partySize) {
		return fmt.Errorf("%w: cannot admit party of %d (%d/%d booked)", ErrInvalidInput, partySize, e.RSVPCount, e.Capacity)
	}
	e.RSVPCount += partySize
	return nil
}

// Release frees seats previously booked by Admit.
func (e *Event) Release(partySize int) {
	e.RSVPCount -= partySize
	if e.RSVPCount < 0 {
		e.RSVPCount = 0
	}
}

// EventRepository defines the interface for event storage.
// Update fails with ErrConflict when the stored version differs from event.Version,
// and increments event.Version on success.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, status EventStatus, params PaginationParams) ([]*Event, int, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
}
