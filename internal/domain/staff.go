package domain

import "context"

// Staff is a member of the shared staff pool. Role is a free-form capability tag.
// swagger:model Staff
type Staff struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Available bool   `json:"available"`
}

// StaffDirectory is the read side of staff bookkeeping owned outside the coordinator.
type StaffDirectory interface {
	GetByID(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context) ([]*Staff, error)
	IsAvailable(ctx context.Context, id string) (bool, error)
}

// FinanceLedger records expenses against the company budget.
type FinanceLedger interface {
	AddExpense(ctx context.Context, eventID string, amount float64, memo string) error
}
