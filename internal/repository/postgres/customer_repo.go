package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcoord/internal/domain"
)

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) domain.CustomerRepository {
	return &customerRepository{
		DB: db,
	}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query, c.ID, c.Name, c.Email, nullString(c.Phone), c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCustomer
		}
		return err
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT id, name, email, phone, created_at FROM customers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail matches case-insensitively.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT id, name, email, phone, created_at FROM customers WHERE lower(email) = lower($1)`
	return r.getOne(ctx, query, email)
}

func (r *customerRepository) getOne(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	c := &domain.Customer{}
	var phone sql.NullString
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Email, &phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.Phone = phone.String
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
		ORDER BY created_at, id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		c := &domain.Customer{}
		var phone sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Phone = phone.String
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
