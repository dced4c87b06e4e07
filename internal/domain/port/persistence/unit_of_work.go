package persistence

import (
	"context"
)

// UnitOfWork coordinates the ledger append/update and the account increment
// so they commit or roll back as one. A completed transaction row must never
// be visible without its balance effect, nor the reverse.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetTransactionRepository returns a ledger repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository
}
