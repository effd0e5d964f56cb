package domain

import (
	"context"
	"strings"
	"time"
)

// Customer is an invitee.
// swagger:model Customer
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasValidEmail reports whether the customer can be invited: the email must contain '@' and '.'.
func (c *Customer) HasValidEmail() bool {
	return strings.Contains(c.Email, "@") && strings.Contains(c.Email, ".")
}

// OnlineOrder carries the buyer details of an online store order.
type OnlineOrder struct {
	OrderID      string
	CustomerName string
	Email        string
	Phone        string
}

// CustomerImport tallies an import of customers from online orders.
// swagger:model CustomerImport
type CustomerImport struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
}

// CustomerRepository defines the interface for customer storage.
// Create returns ErrDuplicateCustomer when the email is taken.
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
}
