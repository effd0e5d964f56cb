package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcoord/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.EventRSVP) error {
	query := `
		INSERT INTO event_rsvps (id, event_id, customer_id, status, party_size, responded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		rsvp.ID, rsvp.EventID, rsvp.CustomerID, string(rsvp.Status), rsvp.PartySize, rsvp.RespondedAt, rsvp.CreatedAt,
	)
	return err
}

func scanRSVP(row rowScanner) (*domain.EventRSVP, error) {
	rsvp := &domain.EventRSVP{}
	var status string
	var respondedAt sql.NullTime
	if err := row.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.CustomerID, &status, &rsvp.PartySize, &respondedAt, &rsvp.CreatedAt); err != nil {
		return nil, err
	}
	rsvp.Status = domain.RSVPStatus(status)
	if respondedAt.Valid {
		rsvp.RespondedAt = &respondedAt.Time
	}
	return rsvp, nil
}

func (r *rsvpRepository) GetByEventAndCustomer(ctx context.Context, eventID, customerID string) (*domain.EventRSVP, error) {
	query := `
		SELECT id, event_id, customer_id, status, party_size, responded_at, created_at
		FROM event_rsvps
		WHERE event_id = $1 AND customer_id = $2
	`
	rsvp, err := scanRSVP(conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, customerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *rsvpRepository) Update(ctx context.Context, rsvp *domain.EventRSVP) error {
	query := `
		UPDATE event_rsvps
		SET status = $2, party_size = $3, responded_at = $4
		WHERE id = $1
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, rsvp.ID, string(rsvp.Status), rsvp.PartySize, rsvp.RespondedAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEventID returns RSVPs in creation order.
func (r *rsvpRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRSVP, error) {
	query := `
		SELECT id, event_id, customer_id, status, party_size, responded_at, created_at
		FROM event_rsvps
		WHERE event_id = $1
		ORDER BY seq
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]*domain.EventRSVP, 0)
	for rows.Next() {
		rsvp, err := scanRSVP(rows)
		if err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}
