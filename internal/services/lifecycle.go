package services

import (
	"context"
	"fmt"

	"eventcoord/internal/domain"
)

func (s *eventCoordinator) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := domain.NewEvent(in.Name, in.Venue, in.Date, in.Cost, in.Capacity)
	if err != nil {
		return nil, err
	}
	now := s.now()
	event.ID = s.newID()
	event.Version = 1
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.metrics.ObserveTransition(event.Status)
	return event, nil
}

func (s *eventCoordinator) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.loadEvent(ctx, eventID)
}

// ListEvents returns one page of events and the total count. An empty status lists every event.
func (s *eventCoordinator) ListEvents(ctx context.Context, status domain.EventStatus, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventCoordinator) SubmitForApproval(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, func(_ context.Context, e *domain.Event) error {
		return e.Submit()
	})
}

func (s *eventCoordinator) RejectEvent(ctx context.Context, eventID, notes string) (*domain.Event, error) {
	return s.transition(ctx, eventID, func(_ context.Context, e *domain.Event) error {
		return e.Reject(notes)
	})
}

func (s *eventCoordinator) LockEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, func(_ context.Context, e *domain.Event) error {
		return e.Lock()
	})
}

// ApproveEvent books the upfront cost with the finance ledger and commits APPROVED in the
// same transaction. A ledger or update failure leaves the event pending with no expense.
func (s *eventCoordinator) ApproveEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, func(ctx context.Context, e *domain.Event) error {
		if err := e.Approve(); err != nil {
			return err
		}
		memo := fmt.Sprintf("upfront cost for event %q", e.Name)
		if err := s.ledger.AddExpense(ctx, e.ID, e.UpfrontCost(), memo); err != nil {
			return fmt.Errorf("record upfront cost: %w", err)
		}
		return nil
	})
}

// transition applies apply to the event under its lock and persists the result in one
// transaction with any writes apply makes. The stored version is re-checked on commit,
// so a concurrent writer causes ErrConflict.
func (s *eventCoordinator) transition(ctx context.Context, eventID string, apply func(context.Context, *domain.Event) error) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventKey(eventID))
	defer unlock()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := apply(ctx, event); err != nil {
			return err
		}
		return s.saveEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveTransition(event.Status)
	return event, nil
}
