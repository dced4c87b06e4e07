package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/propstake/token-ledger/internal/domain/error"
	"github.com/propstake/token-ledger/mocks/port/core"
)

func TestTokenAccount_Lifecycle(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *core.MockTimeProvider {
		tp := new(core.MockTimeProvider)
		tp.On("Now").Return(fixedTime)
		return tp
	}

	t.Run("new account starts at zero", func(t *testing.T) {
		account, err := NewTokenAccount("user-1", newTimeProvider())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
		assert.Equal(t, int64(0), account.TotalPurchased)
		assert.Equal(t, int64(0), account.TotalSpent)
		assert.Nil(t, account.LastPurchaseAt)
	})

	t.Run("should reject empty user ID", func(t *testing.T) {
		_, err := NewTokenAccount("", newTimeProvider())
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("purchase and spend maintain the balance identity", func(t *testing.T) {
		tp := newTimeProvider()
		account, err := NewTokenAccount("user-1", tp)
		assert.NoError(t, err)

		account.ApplyPurchase(10, tp)
		account.ApplyPurchase(5, tp)
		assert.NoError(t, account.ApplySpend(7, tp))

		assert.Equal(t, int64(8), account.Balance)
		assert.Equal(t, int64(15), account.TotalPurchased)
		assert.Equal(t, int64(7), account.TotalSpent)
		assert.Equal(t, account.Balance, account.TotalPurchased-account.TotalSpent)
		assert.NotNil(t, account.LastPurchaseAt)
	})

	t.Run("spend beyond balance is rejected", func(t *testing.T) {
		tp := newTimeProvider()
		account, err := NewTokenAccount("user-1", tp)
		assert.NoError(t, err)
		account.ApplyPurchase(3, tp)

		err = account.ApplySpend(4, tp)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(3), account.Balance)
	})
}

func TestAccountToView(t *testing.T) {
	t.Run("should value the balance at the token rate", func(t *testing.T) {
		account := &TokenAccount{
			UserID:         "user-1",
			Balance:        5,
			TotalPurchased: 8,
			TotalSpent:     3,
		}

		view := AccountToView(account, 1000)

		assert.Equal(t, "user-1", view.UserID)
		assert.Equal(t, int64(5), view.Balance)
		// 5 tokens * 1000 per token = 5000.00
		assert.Equal(t, "5000.00", view.PKRValue)
	})

	t.Run("zero balance values to zero", func(t *testing.T) {
		view := AccountToView(&TokenAccount{UserID: "user-1"}, 1000)
		assert.Equal(t, "0.00", view.PKRValue)
	})
}

func TestZeroAccountView(t *testing.T) {
	view := ZeroAccountView("agent-9")

	assert.Equal(t, "agent-9", view.UserID)
	assert.Equal(t, int64(0), view.Balance)
	assert.Equal(t, int64(0), view.TotalPurchased)
	assert.Equal(t, int64(0), view.TotalSpent)
	assert.Equal(t, "0.00", view.PKRValue)
	assert.Nil(t, view.LastPurchaseAt)
}
