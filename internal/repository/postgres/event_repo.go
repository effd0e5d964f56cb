package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"eventcoord/internal/domain"
)

const eventColumns = `id, name, venue, date, cost, capacity, status, rsvp_count, staff_ids, notes, version, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	var staffIDs pq.StringArray
	var notes sql.NullString
	err := row.Scan(
		&e.ID, &e.Name, &e.Venue, &e.Date, &e.Cost, &e.Capacity, &status, &e.RSVPCount,
		&staffIDs, &notes, &e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	e.StaffIDs = []string(staffIDs)
	if e.StaffIDs == nil {
		e.StaffIDs = []string{}
	}
	e.Notes = notes.String
	e.Date = domain.Day(e.Date)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.ID, e.Name, e.Venue, e.Date, e.Cost, e.Capacity, string(e.Status), e.RSVPCount,
		pq.Array(e.StaffIDs), nullString(e.Notes), e.Version, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns events ordered by date. An empty status matches every event; a zero page size returns all rows.
func (r *eventRepository) List(ctx context.Context, status domain.EventStatus, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM events WHERE ($1 = '' OR status = $1)`
	if err := conn(ctx, r.DB).QueryRowContext(ctx, countQuery, string(status)).Scan(&total); err != nil {
		return nil, 0, err
	}

	var limit sql.NullInt64
	if !params.Unbounded() {
		limit = sql.NullInt64{Int64: int64(params.PageSize), Valid: true}
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1 = '' OR status = $1)
		ORDER BY date, created_at, id
		LIMIT $2 OFFSET $3
	`
	events, err := r.queryEvents(ctx, query, string(status), limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date = $1
		ORDER BY created_at, id
	`
	return r.queryEvents(ctx, query, domain.Day(date))
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update writes every mutable column when the stored version still equals e.Version.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $3, venue = $4, date = $5, cost = $6, capacity = $7, status = $8,
		    rsvp_count = $9, staff_ids = $10, notes = $11, updated_at = $12, version = version + 1
		WHERE id = $1 AND version = $2
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.ID, e.Version, e.Name, e.Venue, e.Date, e.Cost, e.Capacity, string(e.Status),
		e.RSVPCount, pq.Array(e.StaffIDs), nullString(e.Notes), e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, e.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	e.Version++
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
