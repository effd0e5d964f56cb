package domain

import (
	"context"
	"time"
)

// EventInvite places a customer on an event's invite list. SentAt is nil until the invitation goes out.
// swagger:model EventInvite
type EventInvite struct {
	ID         string     `json:"id"`
	EventID    string     `json:"event_id"`
	CustomerID string     `json:"customer_id"`
	VIP        bool       `json:"vip"`
	SentAt     *time.Time `json:"sent_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (i *EventInvite) IsSent() bool {
	return i.SentAt != nil
}

// InviteRepository defines storage operations for event invites.
// Create returns ErrDuplicateInvite when the (event, customer) pair already exists.
// ListByEventID returns invites in insertion order.
type InviteRepository interface {
	Create(ctx context.Context, inv *EventInvite) error
	GetByEventAndCustomer(ctx context.Context, eventID, customerID string) (*EventInvite, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventInvite, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	DeleteUnsent(ctx context.Context, eventID, customerID string) error
}
