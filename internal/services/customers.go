package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventcoord/internal/domain"
)

// RegisterCustomer adds a customer to the directory. Emails are unique; registering a known
// email returns the existing customer.
func (s *eventCoordinator) RegisterCustomer(ctx context.Context, name, email, phone string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, _, err := s.registerCustomer(ctx, name, email, phone)
	return c, err
}

// registerCustomer reports whether the customer was created or already known.
func (s *eventCoordinator) registerCustomer(ctx context.Context, name, email, phone string) (*domain.Customer, bool, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, false, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}

	existing, err := s.customerRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get customer by email: %w", err)
	}

	c := &domain.Customer{
		ID:        s.newID(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(phone),
		CreatedAt: s.now(),
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateCustomer) {
			// lost a race with a concurrent registration
			existing, err := s.customerRepo.GetByEmail(ctx, email)
			return existing, false, err
		}
		return nil, false, fmt.Errorf("create customer: %w", err)
	}
	return c, true, nil
}

// ImportCustomersFromOrders registers order buyers. Orders without a name or a deliverable
// email are skipped; a storage failure stops the import and returns the tally so far.
func (s *eventCoordinator) ImportCustomersFromOrders(ctx context.Context, orders []domain.OnlineOrder) (domain.CustomerImport, error) {
	var result domain.CustomerImport
	for _, order := range orders {
		candidate := domain.Customer{Name: strings.TrimSpace(order.CustomerName), Email: strings.TrimSpace(order.Email)}
		if candidate.Name == "" || !candidate.HasValidEmail() {
			s.logger.DebugContext(ctx, "order skipped", "order_id", order.OrderID)
			result.Skipped++
			continue
		}

		orderCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
		_, created, err := s.registerCustomer(orderCtx, candidate.Name, candidate.Email, order.Phone)
		cancel()
		if err != nil {
			return result, fmt.Errorf("import order %s: %w", order.OrderID, err)
		}
		if created {
			result.Created++
		} else {
			result.Existing++
		}
	}
	s.logger.InfoContext(ctx, "customers imported from orders",
		"created", result.Created, "existing", result.Existing, "skipped", result.Skipped)
	return result, nil
}

func (s *eventCoordinator) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// ListEligibleCustomers returns customers that can be invited.
func (s *eventCoordinator) ListEligibleCustomers(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	eligible := make([]*domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.HasValidEmail() {
			eligible = append(eligible, c)
		}
	}
	return eligible, nil
}
