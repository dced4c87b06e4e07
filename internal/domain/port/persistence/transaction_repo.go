package persistence

import (
	"context"
	"time"

	"github.com/propstake/token-ledger/internal/domain/entity"
)

// TransactionRepository is the append-oriented token ledger
type TransactionRepository interface {
	// Create appends a new ledger entry and fills in its generated ID
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.TokenTransaction) error

	// GetByID retrieves a ledger entry
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no entry has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.TokenTransaction, error)

	// GetByIDForUpdate retrieves a ledger entry under a row lock. Only
	// meaningful inside a unit of work; the settlement path uses it so
	// concurrent completion attempts serialize on the row.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no entry has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.TokenTransaction, error)

	// UpdateStatus persists the status, completed_at and description of an
	// already-transitioned entity
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no entry has the given ID
	// - ErrDatabaseConnection: If database connection fails
	UpdateStatus(ctx context.Context, transaction *entity.TokenTransaction) error

	// ListForUser returns the user's entries, most recent first, bounded
	// by limit
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListForUser(ctx context.Context, userID string, limit int) ([]entity.TokenTransaction, error)

	// ListPendingDeferred returns pending purchase entries whose payment
	// method settles deferred (crypto category), created before the cutoff.
	// The settlement worker polls through this.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListPendingDeferred(ctx context.Context, olderThan time.Time, limit int) ([]entity.TokenTransaction, error)
}
