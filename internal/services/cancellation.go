package services

import (
	"context"
	"errors"
	"fmt"

	"eventcoord/internal/domain"
)

// CancelEvent moves the event to CANCELLED and notifies every customer whose invite was sent.
// It returns the number of customers notified. Notification failures lower the count but the
// cancellation stays committed.
func (s *eventCoordinator) CancelEvent(ctx context.Context, eventID, reason string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventKey(eventID))
	defer unlock()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	invites, err := s.inviteRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("list invites: %w", err)
	}
	if err := event.Cancel(reason); err != nil {
		return 0, err
	}
	if err := s.saveEvent(ctx, event); err != nil {
		return 0, err
	}
	s.metrics.ObserveTransition(event.Status)

	notified := 0
	for _, inv := range invites {
		if !inv.IsSent() {
			continue
		}
		customer, err := s.customerRepo.GetByID(ctx, inv.CustomerID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.logger.ErrorContext(ctx, "resolve customer for cancellation", "event_id", eventID, "customer_id", inv.CustomerID, "err", err)
			}
			continue
		}
		if s.notify(ctx, NotificationCancellation, event, customer, func() error {
			return s.notifier.SendCancellationNotice(ctx, event, customer)
		}) {
			notified++
		}
	}
	s.logger.InfoContext(ctx, "event cancelled", "event_id", eventID, "notified", notified)
	return notified, nil
}
