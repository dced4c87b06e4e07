package account

import (
	"context"
	"errors"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/domain/port/persistence"
)

// UseCase projects the ledger's balance summary into account views
type UseCase struct {
	accountRepo  persistence.AccountRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	tokenRate    int64
}

// NewUseCase creates the balance projector. tokenRate must be the same
// value the purchase workflow prices with, or valuation and pricing diverge.
func NewUseCase(
	accountRepo persistence.AccountRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	tokenRate int64,
) *UseCase {
	return &UseCase{
		accountRepo:  accountRepo,
		timeProvider: timeProvider,
		logger:       logger,
		tokenRate:    tokenRate,
	}
}

// GetAccount returns the user's balance view. Agents always get the fixed
// zero view without touching storage; that is a business rule, not an
// optimization. For everyone else the row is lazily created on first read,
// with the user_id unique constraint resolving concurrent first-reads.
func (u *UseCase) GetAccount(ctx context.Context, userID string, role entity.Role) (entity.AccountView, error) {
	if role.IsAgent() {
		return entity.ZeroAccountView(userID), nil
	}
	if userID == "" {
		return entity.AccountView{}, errs.ErrInvalidUserID
	}

	account, err := u.accountRepo.GetByUserID(ctx, userID)
	if err == nil {
		return entity.AccountToView(account, u.tokenRate), nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		u.logger.Error("Failed to read token account", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return entity.AccountView{}, err
	}

	created, err := entity.NewTokenAccount(userID, u.timeProvider)
	if err != nil {
		return entity.AccountView{}, err
	}
	if err := u.accountRepo.Create(ctx, created); err != nil {
		if !errors.Is(err, errs.ErrAccountConflict) {
			u.logger.Error("Failed to create token account", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
			return entity.AccountView{}, err
		}
		// Lost the creation race; the row exists now
		account, err = u.accountRepo.GetByUserID(ctx, userID)
		if err != nil {
			return entity.AccountView{}, err
		}
		return entity.AccountToView(account, u.tokenRate), nil
	}

	u.logger.Info("Token account created", map[string]any{
		"user_id": userID,
	})
	return entity.AccountToView(created, u.tokenRate), nil
}
