package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventcoord/internal/domain"
)

// Staff assignment results reported to Metrics.
const (
	assignmentAssigned    = "assigned"
	assignmentUnavailable = "unavailable"
	assignmentConflict    = "conflict"
)

// AssignStaffToEvent adds staffID to the event. It fails when the staff member is unavailable
// or already works another event on the same date. Re-assigning is a no-op.
func (s *eventCoordinator) AssignStaffToEvent(ctx context.Context, eventID, staffID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// staff before event, always
	unlockStaff := s.locks.Lock(staffKey(staffID))
	defer unlockStaff()
	unlockEvent := s.locks.Lock(eventKey(eventID))
	defer unlockEvent()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadStaff(ctx, staffID); err != nil {
		return nil, err
	}
	if err := event.CheckStaffingOpen(); err != nil {
		return nil, err
	}
	if event.HasStaff(staffID) {
		return event, nil
	}

	available, err := s.staff.IsAvailable(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("check staff availability: %w", err)
	}
	if !available {
		s.metrics.ObserveStaffAssignment(assignmentUnavailable)
		return nil, fmt.Errorf("%w: %s", domain.ErrStaffUnavailable, staffID)
	}

	sameDay, err := s.eventRepo.ListByDate(ctx, event.Date)
	if err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}
	for _, other := range sameDay {
		if other.ID != event.ID && other.HasStaff(staffID) {
			s.metrics.ObserveStaffAssignment(assignmentConflict)
			return nil, fmt.Errorf("%w: staff %s is assigned to event %s on %s",
				domain.ErrDateConflict, staffID, other.ID, event.Date.Format(time.DateOnly))
		}
	}

	event.AssignStaff(staffID)
	if err := s.saveEvent(ctx, event); err != nil {
		return nil, err
	}
	s.metrics.ObserveStaffAssignment(assignmentAssigned)
	return event, nil
}

func (s *eventCoordinator) RemoveStaffFromEvent(ctx context.Context, eventID, staffID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventKey(eventID))
	defer unlock()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.RemoveStaff(staffID) {
		return nil, domain.NewNotFound(domain.KindStaff, staffID)
	}
	if err := s.saveEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventCoordinator) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// GetAvailableStaff returns staff that are available and not yet assigned to any event on date.
func (s *eventCoordinator) GetAvailableStaff(ctx context.Context, date time.Time) ([]*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	all, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	sameDay, err := s.eventRepo.ListByDate(ctx, domain.Day(date))
	if err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}
	busy := make(map[string]struct{})
	for _, e := range sameDay {
		for _, id := range e.StaffIDs {
			busy[id] = struct{}{}
		}
	}

	out := make([]*domain.Staff, 0, len(all))
	for _, st := range all {
		if _, ok := busy[st.ID]; ok {
			continue
		}
		available, err := s.staff.IsAvailable(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("check staff availability: %w", err)
		}
		if available {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *eventCoordinator) loadStaff(ctx context.Context, staffID string) (*domain.Staff, error) {
	st, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound(domain.KindStaff, staffID)
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return st, nil
}
