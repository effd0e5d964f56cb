package domain

import (
	"context"
	"time"
)

// RSVPStatus is a customer's response state for a sent invite.
type RSVPStatus string

const (
	RSVPStatusPending  RSVPStatus = "PENDING"
	RSVPStatusAccepted RSVPStatus = "ACCEPTED"
	RSVPStatusDeclined RSVPStatus = "DECLINED"
	RSVPStatusWaitlist RSVPStatus = "WAITLIST"
)

// RSVPStatuses lists every status in summary order.
var RSVPStatuses = []RSVPStatus{RSVPStatusPending, RSVPStatusAccepted, RSVPStatusDeclined, RSVPStatusWaitlist}

// EventRSVP is created in PENDING when an invite is sent; only Status, PartySize and RespondedAt change afterwards.
// swagger:model EventRSVP
type EventRSVP struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	CustomerID  string     `json:"customer_id"`
	Status      RSVPStatus `json:"status"`
	PartySize   int        `json:"party_size"`
	RespondedAt *time.Time `json:"responded_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewPendingRSVP returns the RSVP created when an invite is sent.
func NewPendingRSVP(id, eventID, customerID string, createdAt time.Time) *EventRSVP {
	return &EventRSVP{
		ID:         id,
		EventID:    eventID,
		CustomerID: customerID,
		Status:     RSVPStatusPending,
		PartySize:  1,
		CreatedAt:  createdAt,
	}
}

// HoldsSeats reports whether the RSVP currently counts against event capacity.
func (r *EventRSVP) HoldsSeats() bool {
	return r.Status == RSVPStatusAccepted
}

func (r *EventRSVP) respond(status RSVPStatus, partySize int, at time.Time) {
	r.Status = status
	r.PartySize = partySize
	r.RespondedAt = &at
}

func (r *EventRSVP) Accept(partySize int, at time.Time) {
	r.respond(RSVPStatusAccepted, partySize, at)
}

func (r *EventRSVP) Waitlist(partySize int, at time.Time) {
	r.respond(RSVPStatusWaitlist, partySize, at)
}

// Decline keeps the last recorded party size.
func (r *EventRSVP) Decline(at time.Time) { r.respond(RSVPStatusDeclined, r.PartySize, at) }

// RSVPSummary counts RSVPs per status.
type RSVPSummary map[RSVPStatus]int

// NewRSVPSummary returns a summary with every status present.
func NewRSVPSummary(rsvps []*EventRSVP) RSVPSummary {
	s := make(RSVPSummary, len(RSVPStatuses))
	for _, st := range RSVPStatuses {
		s[st] = 0
	}
	for _, r := range rsvps {
		s[r.Status]++
	}
	return s
}

// RSVPRepository defines storage operations for RSVPs.
// ListByEventID returns RSVPs ordered by creation.
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *EventRSVP) error
	GetByEventAndCustomer(ctx context.Context, eventID, customerID string) (*EventRSVP, error)
	Update(ctx context.Context, rsvp *EventRSVP) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventRSVP, error)
}
