package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcoord/internal/domain"
)

func TestEventCoordinator_RegisterCustomer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		customerName string
		email        string
		wantID       string
		wantCount    int
		wantErr      error
	}{
		{name: "new customer", customerName: "Ada", email: " Ada@Example.com ", wantID: "id-1", wantCount: 2},
		{name: "known email returns existing", customerName: "Ada L.", email: "Existing@example.com", wantID: "c-1", wantCount: 1},
		{name: "missing email", customerName: "Ada", email: "", wantErr: domain.ErrInvalidInput},
		{name: "missing name", customerName: "", email: "x@example.com", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.customers.add("c-1", "Existing", "existing@example.com")

			got, err := f.svc.RegisterCustomer(ctx, tt.customerName, tt.email, "555-0100")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			list, _ := f.customers.List(ctx)
			assert.Len(t, list, tt.wantCount)
		})
	}
}

func TestEventCoordinator_RegisterCustomer_NormalizesEmail(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.RegisterCustomer(context.Background(), "Ada", " Ada@Example.com ", "")

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, testNow, got.CreatedAt)
}

func TestEventCoordinator_ListEligibleCustomers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.customers.add("c-1", "Ada", "ada@example.com")
	f.customers.add("c-2", "Bob", "bob@localhost")
	f.customers.add("c-3", "Cy", "cy.example.com")
	f.customers.add("c-4", "Di", "di@example.org")

	all, err := f.svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	got, err := f.svc.ListEligibleCustomers(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c-1", "c-4"}, ids)

	f.customers.listErr = errors.New("connection refused")
	_, err = f.svc.ListEligibleCustomers(ctx)
	require.Error(t, err)
}

func TestEventCoordinator_ImportCustomersFromOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.customers.add("c-1", "Existing", "existing@example.com")

	orders := []domain.OnlineOrder{
		{OrderID: "o-1", CustomerName: "Grace Hopper", Email: "grace@example.com", Phone: "555-0101"},
		{OrderID: "o-2", CustomerName: "Existing Buyer", Email: "EXISTING@example.com"},
		{OrderID: "o-3", CustomerName: "Grace H.", Email: "grace@example.com"},
		{OrderID: "o-4", CustomerName: "No Mail", Email: "not-an-address"},
		{OrderID: "o-5", CustomerName: "  ", Email: "blank@example.com"},
		{OrderID: "o-6", CustomerName: "Alan Turing", Email: "alan@example.org"},
	}

	got, err := f.svc.ImportCustomersFromOrders(ctx, orders)

	require.NoError(t, err)
	assert.Equal(t, domain.CustomerImport{Created: 2, Existing: 2, Skipped: 2}, got)
	list, err := f.customers.List(ctx)
	require.NoError(t, err)
	emails := make([]string, 0, len(list))
	for _, c := range list {
		emails = append(emails, c.Email)
	}
	assert.Equal(t, []string{"existing@example.com", "grace@example.com", "alan@example.org"}, emails)

	again, err := f.svc.ImportCustomersFromOrders(ctx, orders)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created, "re-importing the same orders creates nobody")
}

func TestEventCoordinator_ImportCustomersFromOrders_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.customers.createErr = errors.New("connection reset")

	got, err := f.svc.ImportCustomersFromOrders(context.Background(), []domain.OnlineOrder{
		{OrderID: "o-1", CustomerName: "No Mail", Email: ""},
		{OrderID: "o-2", CustomerName: "Grace Hopper", Email: "grace@example.com"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import order o-2")
	assert.Equal(t, domain.CustomerImport{Skipped: 1}, got)
}
