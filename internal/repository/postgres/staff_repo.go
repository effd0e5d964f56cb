package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcoord/internal/domain"
)

type staffDirectory struct {
	DB *sql.DB
}

// NewStaffDirectory returns a StaffDirectory backed by the staff table. Availability is
// maintained by the staff bookkeeping system that owns the table.
func NewStaffDirectory(db *sql.DB) domain.StaffDirectory {
	return &staffDirectory{
		DB: db,
	}
}

func (r *staffDirectory) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	query := `SELECT id, name, role, available FROM staff WHERE id = $1`
	s := &domain.Staff{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Role, &s.Available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *staffDirectory) List(ctx context.Context) ([]*domain.Staff, error) {
	query := `
		SELECT id, name, role, available
		FROM staff
		ORDER BY name, id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		s := &domain.Staff{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.Available); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

func (r *staffDirectory) IsAvailable(ctx context.Context, id string) (bool, error) {
	var available bool
	err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT available FROM staff WHERE id = $1`, id).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return available, nil
}
