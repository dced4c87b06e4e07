package account

import (
	"context"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	"github.com/propstake/token-ledger/internal/domain/port/persistence"
)

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryUseCase reads a user's ledger entries
type HistoryUseCase struct {
	transactionRepo persistence.TransactionRepository
}

// NewHistoryUseCase creates a ledger history reader
func NewHistoryUseCase(transactionRepo persistence.TransactionRepository) *HistoryUseCase {
	return &HistoryUseCase{transactionRepo: transactionRepo}
}

// ListTransactions returns the user's entries, most recent first. Agents
// hold no tokens, so their history is always empty.
func (u *HistoryUseCase) ListTransactions(ctx context.Context, userID string, role entity.Role, limit int) ([]entity.TokenTransaction, error) {
	if role.IsAgent() {
		return []entity.TokenTransaction{}, nil
	}
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return u.transactionRepo.ListForUser(ctx, userID, limit)
}
