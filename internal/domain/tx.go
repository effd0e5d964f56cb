package domain

import "context"

// Transactor groups repository writes into one unit. Repositories called with the ctx
// handed to fn join the transaction; an error from fn rolls every write back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
