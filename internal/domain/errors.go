package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the coordinator, repositories and delivery layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrDuplicateInvite    = errors.New("customer already on invite list")
	ErrDuplicateCustomer  = errors.New("customer email already registered")
	ErrDateConflict       = errors.New("staff already assigned to another event on that date")
	ErrStaffUnavailable   = errors.New("staff member unavailable")
	ErrIneligibleCustomer = errors.New("customer has no valid email")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("event was modified concurrently")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// Kinds of entities reported by NotFoundError.
const (
	KindEvent    = "event"
	KindCustomer = "customer"
	KindStaff    = "staff"
	KindInvite   = "invite"
	KindRSVP     = "rsvp"
)

// NotFoundError reports which entity could not be resolved. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Kind string
	ID   string
}

// NewNotFound returns a *NotFoundError for the given kind and id.
func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidTransitionError reports a failed lifecycle guard together with the status that caused it.
// It matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	Op     string
	Guard  string
	Status EventStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("event %s; current status: %s", e.Guard, e.Status)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func invalidTransition(op, guard string, status EventStatus) error {
	return &InvalidTransitionError{Op: op, Guard: guard, Status: status}
}
