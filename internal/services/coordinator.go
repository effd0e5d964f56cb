package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eventcoord/internal/domain"
)

// Notification kinds reported to Metrics.
const (
	NotificationInvitation       = "invitation"
	NotificationRSVPConfirmation = "rsvp_confirmation"
	NotificationWaitlist         = "waitlist"
	NotificationCancellation     = "cancellation"
)

// Metrics receives coordinator outcomes. internal/metrics provides the Prometheus implementation.
type Metrics interface {
	ObserveNotification(kind string, delivered bool)
	ObserveRSVP(status domain.RSVPStatus)
	ObserveTransition(status domain.EventStatus)
	ObserveStaffAssignment(result string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveNotification(string, bool)     {}
func (nopMetrics) ObserveRSVP(domain.RSVPStatus)        {}
func (nopMetrics) ObserveTransition(domain.EventStatus) {}
func (nopMetrics) ObserveStaffAssignment(string)        {}

// CoordinatorDeps groups the collaborators of the event coordinator.
// Metrics, Logger, Now and NewID are optional; Tx is required.
type CoordinatorDeps struct {
	Tx        domain.Transactor
	Events    domain.EventRepository
	Customers domain.CustomerRepository
	Invites   domain.InviteRepository
	RSVPs     domain.RSVPRepository
	Staff     domain.StaffDirectory
	Ledger    domain.FinanceLedger
	Notifier  domain.Notifier
	Metrics   Metrics
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

type eventCoordinator struct {
	tx             domain.Transactor
	eventRepo      domain.EventRepository
	customerRepo   domain.CustomerRepository
	inviteRepo     domain.InviteRepository
	rsvpRepo       domain.RSVPRepository
	staff          domain.StaffDirectory
	ledger         domain.FinanceLedger
	notifier       domain.Notifier
	metrics        Metrics
	logger         *slog.Logger
	locks          *keyedMutex
	now            func() time.Time
	newID          func() string
	contextTimeout time.Duration
}

// NewEventCoordinator returns an EventCoordinator safe for concurrent use.
func NewEventCoordinator(deps CoordinatorDeps, timeout time.Duration) domain.EventCoordinator {
	c := &eventCoordinator{
		tx:             deps.Tx,
		eventRepo:      deps.Events,
		customerRepo:   deps.Customers,
		inviteRepo:     deps.Invites,
		rsvpRepo:       deps.RSVPs,
		staff:          deps.Staff,
		ledger:         deps.Ledger,
		notifier:       deps.Notifier,
		metrics:        deps.Metrics,
		logger:         deps.Logger,
		locks:          newKeyedMutex(),
		now:            deps.Now,
		newID:          deps.NewID,
		contextTimeout: timeout,
	}
	if c.metrics == nil {
		c.metrics = nopMetrics{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = func() time.Time { return time.Now().UTC() }
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c
}

func eventKey(id string) string { return "event:" + id }
func staffKey(id string) string { return "staff:" + id }

// loadEvent resolves an event, turning a repository miss into a typed NotFoundError.
func (s *eventCoordinator) loadEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound(domain.KindEvent, eventID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventCoordinator) loadCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound(domain.KindCustomer, customerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

// saveEvent persists event with an optimistic version check.
func (s *eventCoordinator) saveEvent(ctx context.Context, event *domain.Event) error {
	event.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// notify runs send and reports whether it succeeded. Failures are logged and counted, never returned.
func (s *eventCoordinator) notify(ctx context.Context, kind string, event *domain.Event, customer *domain.Customer, send func() error) bool {
	err := send()
	s.metrics.ObserveNotification(kind, err == nil)
	if err != nil {
		s.logger.WarnContext(ctx, "notification failed",
			"kind", kind,
			"event_id", event.ID,
			"customer_id", customer.ID,
			"err", err,
		)
		return false
	}
	return true
}
