package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventcoord/internal/domain"
)

func TestCustomerRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		customer *domain.Customer
		mock     func(mock sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name:     "success",
			customer: &domain.Customer{ID: "c-1", Name: "Ana", Email: "ana@example.com", Phone: "555-0100", CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO customers \(id, name, email, phone, created_at\)`).
					WithArgs("c-1", "Ana", "ana@example.com", "555-0100", createdAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:     "empty phone stored as NULL",
			customer: &domain.Customer{ID: "c-2", Name: "Ben", Email: "ben@example.com", CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO customers`).
					WithArgs("c-2", "Ben", "ben@example.com", nil, createdAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:     "duplicate email returns ErrDuplicateCustomer",
			customer: &domain.Customer{ID: "c-3", Name: "Ana", Email: "ANA@example.com", CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO customers`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateCustomer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewCustomerRepository(db).Create(ctx, tt.customer)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCustomerRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "name", "email", "phone", "created_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Customer
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE lower\(email\) = lower\(\$1\)`).
					WithArgs("Ana@Example.com").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("c-1", "Ana", "ana@example.com", nil, createdAt))
			},
			want: &domain.Customer{ID: "c-1", Name: "Ana", Email: "ana@example.com", CreatedAt: createdAt},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE lower\(email\) = lower\(\$1\)`).
					WithArgs("Ana@Example.com").
					WillReturnRows(sqlmock.NewRows(cols))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "query error is returned",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM customers`).WillReturnError(errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewCustomerRepository(db).GetByEmail(ctx, "Ana@Example.com")
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCustomerRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM customers WHERE id = \$1`).
		WithArgs("c-404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at"}))

	_, err = NewCustomerRepository(db).GetByID(context.Background(), "c-404")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at"}).
			AddRow("c-1", "Ana", "ana@example.com", "555-0100", createdAt).
			AddRow("c-2", "Ben", "ben@example.com", nil, createdAt))

	got, err := NewCustomerRepository(db).List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "555-0100", got[0].Phone)
	require.Empty(t, got[1].Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}
