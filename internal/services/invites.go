package services

import (
	"context"
	"errors"
	"fmt"

	"eventcoord/internal/domain"
)

func (s *eventCoordinator) AddCustomerToInviteList(ctx context.Context, eventID, customerID string, vip bool) (*domain.EventInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventKey(eventID))
	defer unlock()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.CheckInvitesOpen(); err != nil {
		return nil, err
	}
	customer, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.HasValidEmail() {
		return nil, fmt.Errorf("%w: %s", domain.ErrIneligibleCustomer, customer.ID)
	}

	inv := &domain.EventInvite{
		ID:         s.newID(),
		EventID:    event.ID,
		CustomerID: customer.ID,
		VIP:        vip,
		CreatedAt:  s.now(),
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrDuplicateInvite) {
			return nil, err
		}
		return nil, fmt.Errorf("create invite: %w", err)
	}
	return inv, nil
}

// RemoveCustomerFromInviteList deletes an invite that has not been sent. RSVPs are untouched.
func (s *eventCoordinator) RemoveCustomerFromInviteList(ctx context.Context, eventID, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventKey(eventID))
	defer unlock()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := event.CheckInvitesOpen(); err != nil {
		return err
	}
	if err := s.inviteRepo.DeleteUnsent(ctx, eventID, customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFound(domain.KindInvite, customerID)
		}
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (s *eventCoordinator) GetInviteList(ctx context.Context, eventID string) ([]*domain.EventInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.loadEvent(ctx, eventID); err != nil {
		return nil, err
	}
	invites, err := s.inviteRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return invites, nil
}

// SendInvites delivers every unsent invite of a financially approved event and opens a
// PENDING RSVP for each one delivered. Invites whose notification fails stay unsent.
func (s *eventCoordinator) SendInvites(ctx context.Context, eventID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventKey(eventID))
	defer unlock()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if err := event.CheckInvitesSendable(); err != nil {
		return 0, err
	}
	invites, err := s.inviteRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("list invites: %w", err)
	}

	sent := 0
	for _, inv := range invites {
		if inv.IsSent() {
			continue
		}
		customer, err := s.customerRepo.GetByID(ctx, inv.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.WarnContext(ctx, "invite references unknown customer", "event_id", eventID, "customer_id", inv.CustomerID)
				continue
			}
			return sent, fmt.Errorf("get customer: %w", err)
		}
		ok := s.notify(ctx, NotificationInvitation, event, customer, func() error {
			return s.notifier.SendInvitation(ctx, event, customer, inv.VIP)
		})
		if !ok {
			continue
		}

		now := s.now()
		rsvp := domain.NewPendingRSVP(s.newID(), eventID, inv.CustomerID, now)
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.inviteRepo.MarkSent(ctx, inv.ID, now); err != nil {
				return fmt.Errorf("mark invite sent: %w", err)
			}
			if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
				return fmt.Errorf("create rsvp: %w", err)
			}
			return nil
		})
		if err != nil {
			return sent, err
		}
		inv.SentAt = &now
		sent++
	}
	if sent > 0 {
		s.logger.InfoContext(ctx, "invites sent", "event_id", eventID, "sent", sent)
	}
	return sent, nil
}
