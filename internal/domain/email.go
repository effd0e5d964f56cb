package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventEmailData is the event and recipient context shared by every guest email.
type EventEmailData struct {
	Email        string
	CustomerName string
	EventName    string
	Venue        string
	Date         time.Time
}

// InvitationEmailData holds data for the invitation email.
type InvitationEmailData struct {
	EventEmailData
	VIP bool
}

// RSVPConfirmationEmailData holds data for the accepted/declined confirmation.
type RSVPConfirmationEmailData struct {
	EventEmailData
	Accepted  bool
	PartySize int
}

// WaitlistEmailData holds data for the waitlist placement email.
type WaitlistEmailData struct {
	EventEmailData
	PartySize int
}

// CancellationEmailData holds data for the cancellation notice.
type CancellationEmailData struct {
	EventEmailData
	Reason string
}

// Notifier delivers guest-facing notifications. A nil error means the notification was delivered.
type Notifier interface {
	SendInvitation(ctx context.Context, event *Event, customer *Customer, vip bool) error
	SendRSVPConfirmation(ctx context.Context, event *Event, customer *Customer, rsvp *EventRSVP) error
	SendWaitlistNotice(ctx context.Context, event *Event, customer *Customer, rsvp *EventRSVP) error
	SendCancellationNotice(ctx context.Context, event *Event, customer *Customer) error
}
