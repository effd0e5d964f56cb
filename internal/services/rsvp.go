package services

import (
	"context"
	"errors"
	"fmt"

	"eventcoord/internal/domain"
)

// ProcessRSVP records a customer's response. Acceptances are admitted first come first served:
// a party that does not fit is waitlisted and rsvpCount is left unchanged. Waitlisted RSVPs are
// never promoted automatically.
func (s *eventCoordinator) ProcessRSVP(ctx context.Context, eventID, customerID string, accepted bool, partySize int) (*domain.EventRSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if accepted && partySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock(eventKey(eventID))
	defer unlock()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.CheckRSVPOpen(); err != nil {
		return nil, err
	}
	rsvp, err := s.rsvpRepo.GetByEventAndCustomer(ctx, eventID, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound(domain.KindRSVP, customerID)
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	customer, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	seatsChanged := false
	if rsvp.HoldsSeats() {
		event.Release(rsvp.PartySize)
		seatsChanged = true
	}
	switch {
	case !accepted:
		rsvp.Decline(now)
	case event.HasCapacityFor(partySize):
		if err := event.Admit(partySize); err != nil {
			return nil, err
		}
		rsvp.Accept(partySize, now)
		seatsChanged = true
	default:
		rsvp.Waitlist(partySize, now)
	}

	// rsvp_count and the RSVP row commit together so a failed write never leaves seats held.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if seatsChanged {
			if err := s.saveEvent(ctx, event); err != nil {
				return err
			}
		}
		if err := s.rsvpRepo.Update(ctx, rsvp); err != nil {
			return fmt.Errorf("update rsvp: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRSVP(rsvp.Status)

	if rsvp.Status == domain.RSVPStatusWaitlist {
		s.notify(ctx, NotificationWaitlist, event, customer, func() error {
			return s.notifier.SendWaitlistNotice(ctx, event, customer, rsvp)
		})
	} else {
		s.notify(ctx, NotificationRSVPConfirmation, event, customer, func() error {
			return s.notifier.SendRSVPConfirmation(ctx, event, customer, rsvp)
		})
	}
	return rsvp, nil
}

func (s *eventCoordinator) GetRSVPSummary(ctx context.Context, eventID string) (domain.RSVPSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvps, err := s.listRSVPs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return domain.NewRSVPSummary(rsvps), nil
}

// GetWaitlist returns waitlisted RSVPs in the order they were created.
func (s *eventCoordinator) GetWaitlist(ctx context.Context, eventID string) ([]*domain.EventRSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvps, err := s.listRSVPs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	waitlist := make([]*domain.EventRSVP, 0)
	for _, r := range rsvps {
		if r.Status == domain.RSVPStatusWaitlist {
			waitlist = append(waitlist, r)
		}
	}
	return waitlist, nil
}

func (s *eventCoordinator) listRSVPs(ctx context.Context, eventID string) ([]*domain.EventRSVP, error) {
	if _, err := s.loadEvent(ctx, eventID); err != nil {
		return nil, err
	}
	rsvps, err := s.rsvpRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}
