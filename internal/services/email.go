package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventcoord/internal/domain"
)

// Template names under internal/adapters/email/templates.
const (
	templateInvitation       = "invitation"
	templateRSVPConfirmation = "rsvp_confirmation"
	templateWaitlist         = "waitlist"
	templateCancellation     = "cancellation"
)

type emailNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailNotifier returns a Notifier that renders guest emails with renderer and delivers them through mailer.
func NewEmailNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailNotifier{mailer: mailer, renderer: renderer, logger: logger}
}

func eventEmailData(event *domain.Event, customer *domain.Customer) domain.EventEmailData {
	return domain.EventEmailData{
		Email:        customer.Email,
		CustomerName: customer.Name,
		EventName:    event.Name,
		Venue:        event.Venue,
		Date:         event.Date,
	}
}

// SendInvitation sends the "invitation" template. VIP guests get the VIP wording.
func (s *emailNotifier) SendInvitation(ctx context.Context, event *domain.Event, customer *domain.Customer, vip bool) error {
	data := &domain.InvitationEmailData{
		EventEmailData: eventEmailData(event, customer),
		VIP:            vip,
	}
	return s.send(ctx, templateInvitation, customer, data)
}

func (s *emailNotifier) SendRSVPConfirmation(ctx context.Context, event *domain.Event, customer *domain.Customer, rsvp *domain.EventRSVP) error {
	data := &domain.RSVPConfirmationEmailData{
		EventEmailData: eventEmailData(event, customer),
		Accepted:       rsvp.Status == domain.RSVPStatusAccepted,
		PartySize:      rsvp.PartySize,
	}
	return s.send(ctx, templateRSVPConfirmation, customer, data)
}

func (s *emailNotifier) SendWaitlistNotice(ctx context.Context, event *domain.Event, customer *domain.Customer, rsvp *domain.EventRSVP) error {
	data := &domain.WaitlistEmailData{
		EventEmailData: eventEmailData(event, customer),
		PartySize:      rsvp.PartySize,
	}
	return s.send(ctx, templateWaitlist, customer, data)
}

func (s *emailNotifier) SendCancellationNotice(ctx context.Context, event *domain.Event, customer *domain.Customer) error {
	data := &domain.CancellationEmailData{
		EventEmailData: eventEmailData(event, customer),
		Reason:         event.Notes,
	}
	return s.send(ctx, templateCancellation, customer, data)
}

func (s *emailNotifier) send(ctx context.Context, templateName string, customer *domain.Customer, data any) error {
	if !customer.HasValidEmail() {
		return fmt.Errorf("%s email to customer %s: %w", templateName, customer.ID, domain.ErrIneligibleCustomer)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(ctx, customer.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.DebugContext(ctx, "email sent", "template", templateName, "to", customer.Email)
	return nil
}
