package postgres

import (
	"context"
	"database/sql"

	"eventcoord/internal/domain"
)

type financeLedger struct {
	DB *sql.DB
}

// NewFinanceLedger returns a FinanceLedger that appends to finance_expenses.
func NewFinanceLedger(db *sql.DB) domain.FinanceLedger {
	return &financeLedger{DB: db}
}

func (l *financeLedger) AddExpense(ctx context.Context, eventID string, amount float64, memo string) error {
	query := `
		INSERT INTO finance_expenses (event_id, amount, memo)
		VALUES ($1, $2, $3)
	`
	_, err := conn(ctx, l.DB).ExecContext(ctx, query, eventID, amount, memo)
	return err
}
