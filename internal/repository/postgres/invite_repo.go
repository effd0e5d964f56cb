package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventcoord/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{
		DB: db,
	}
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.EventInvite) error {
	query := `
		INSERT INTO event_invites (id, event_id, customer_id, vip, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query, inv.ID, inv.EventID, inv.CustomerID, inv.VIP, inv.SentAt, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvite
		}
		return err
	}
	return nil
}

func scanInvite(row rowScanner) (*domain.EventInvite, error) {
	inv := &domain.EventInvite{}
	var sentAt sql.NullTime
	if err := row.Scan(&inv.ID, &inv.EventID, &inv.CustomerID, &inv.VIP, &sentAt, &inv.CreatedAt); err != nil {
		return nil, err
	}
	if sentAt.Valid {
		inv.SentAt = &sentAt.Time
	}
	return inv, nil
}

func (r *inviteRepository) GetByEventAndCustomer(ctx context.Context, eventID, customerID string) (*domain.EventInvite, error) {
	query := `
		SELECT id, event_id, customer_id, vip, sent_at, created_at
		FROM event_invites
		WHERE event_id = $1 AND customer_id = $2
	`
	inv, err := scanInvite(conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, customerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

// ListByEventID returns invites in insertion order.
func (r *inviteRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventInvite, error) {
	query := `
		SELECT id, event_id, customer_id, vip, sent_at, created_at
		FROM event_invites
		WHERE event_id = $1
		ORDER BY seq
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.EventInvite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.EventInvite{}
	}
	return invs, nil
}

// MarkSent stamps an unsent invite. It returns ErrNotFound if the invite is unknown or already sent.
func (r *inviteRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	query := `UPDATE event_invites SET sent_at = $2 WHERE id = $1 AND sent_at IS NULL`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id, sentAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inviteRepository) DeleteUnsent(ctx context.Context, eventID, customerID string) error {
	query := `DELETE FROM event_invites WHERE event_id = $1 AND customer_id = $2 AND sent_at IS NULL`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, eventID, customerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
