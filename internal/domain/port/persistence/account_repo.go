package persistence

import (
	"context"
	"time"

	"github.com/propstake/token-ledger/internal/domain/entity"
)

// AccountRepository manages the per-user balance projection rows
type AccountRepository interface {
	// GetByUserID retrieves the account for a user
	//
	// Possible errors:
	// - ErrAccountNotFound: If no row exists yet (lazy creation is the caller's job)
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID string) (*entity.TokenAccount, error)

	// Create inserts a zero-seeded account row. The user_id unique
	// constraint makes concurrent first-reads safe: losers of the race get
	// ErrAccountConflict and re-read.
	//
	// Possible errors:
	// - ErrAccountConflict: If a row for the user already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, account *entity.TokenAccount) error

	// Credit atomically increments balance and total_purchased and stamps
	// last_purchase_at. Uses an in-database increment rather than
	// read-modify-write so concurrent purchases never lose updates.
	//
	// Possible errors:
	// - ErrAccountNotFound: If no row exists for the user
	// - ErrDatabaseConnection: If database connection fails
	Credit(ctx context.Context, userID string, tokenAmount int64, purchasedAt time.Time) error

	// Debit atomically decrements balance and increments total_spent,
	// refusing to take the balance negative.
	//
	// Possible errors:
	// - ErrAccountNotFound: If no row exists for the user
	// - ErrInsufficientBalance: If the balance cannot cover the debit
	// - ErrDatabaseConnection: If database connection fails
	Debit(ctx context.Context, userID string, tokenAmount int64) error
}
