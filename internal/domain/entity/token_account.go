package entity

import (
	"time"

	errs "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
)

// TokenAccount is the per-user balance projection maintained alongside the
// ledger. Invariant after every committed unit of work:
// Balance == TotalPurchased - TotalSpent. Agents never get a row.
type TokenAccount struct {
	UserID         string
	Balance        int64
	TotalPurchased int64
	TotalSpent     int64
	LastPurchaseAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTokenAccount creates a zero-seeded account for a user
func NewTokenAccount(userID string, timeProvider coreport.TimeProvider) (*TokenAccount, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	now := timeProvider.Now()
	return &TokenAccount{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyPurchase credits tokens to the account
func (a *TokenAccount) ApplyPurchase(tokenAmount int64, timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	a.Balance += tokenAmount
	a.TotalPurchased += tokenAmount
	a.LastPurchaseAt = &now
	a.UpdatedAt = now
}

// ApplySpend debits tokens, rejecting overdrafts
func (a *TokenAccount) ApplySpend(tokenAmount int64, timeProvider coreport.TimeProvider) error {
	if a.Balance < tokenAmount {
		return errs.NewInsufficientBalanceError(a.UserID, tokenAmount, a.Balance)
	}
	a.Balance -= tokenAmount
	a.TotalSpent += tokenAmount
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// AccountView is the read model returned to callers. PKRValue is computed
// from the balance and the token rate, never stored.
type AccountView struct {
	UserID         string     `json:"userId"`
	Balance        int64      `json:"balance"`
	TotalPurchased int64      `json:"totalPurchased"`
	TotalSpent     int64      `json:"totalSpent"`
	PKRValue       string     `json:"pkrValue"`
	LastPurchaseAt *time.Time `json:"lastPurchase"`
}

// AccountToView projects an account through the token rate (currency units
// per token)
func AccountToView(account *TokenAccount, tokenRate int64) AccountView {
	return AccountView{
		UserID:         account.UserID,
		Balance:        account.Balance,
		TotalPurchased: account.TotalPurchased,
		TotalSpent:     account.TotalSpent,
		PKRValue:       CentsToString(account.Balance * tokenRate * 100),
		LastPurchaseAt: account.LastPurchaseAt,
	}
}

// ZeroAccountView is the fixed view reported for agents, who are excluded
// from the token economy without a persisted row
func ZeroAccountView(userID string) AccountView {
	return AccountView{
		UserID:   userID,
		PKRValue: CentsToString(0),
	}
}
