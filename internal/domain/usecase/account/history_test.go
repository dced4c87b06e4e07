package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	"github.com/propstake/token-ledger/mocks/port/persistence"
)

func TestHistoryUseCase_ListTransactions(t *testing.T) {
	sample := []entity.TokenTransaction{
		{
			ID:          2,
			UserID:      "user-1",
			Type:        entity.TypeSpend,
			TokenAmount: 1,
			AmountCents: 100000,
			Status:      entity.StatusCompleted,
			CreatedAt:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          1,
			UserID:      "user-1",
			Type:        entity.TypePurchase,
			TokenAmount: 5,
			AmountCents: 512500,
			Status:      entity.StatusCompleted,
			CreatedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	t.Run("should return the user's entries with the default limit", func(t *testing.T) {
		transactionRepo := new(persistence.MockTransactionRepository)
		transactionRepo.On("ListForUser", mock.Anything, "user-1", DefaultHistoryLimit).Return(sample, nil)

		useCase := NewHistoryUseCase(transactionRepo)
		txns, err := useCase.ListTransactions(context.Background(), "user-1", entity.RoleUser, 0)

		assert.NoError(t, err)
		assert.Len(t, txns, 2)
		transactionRepo.AssertExpectations(t)
	})

	t.Run("requested limit is passed through", func(t *testing.T) {
		transactionRepo := new(persistence.MockTransactionRepository)
		transactionRepo.On("ListForUser", mock.Anything, "user-1", 7).Return(sample, nil)

		useCase := NewHistoryUseCase(transactionRepo)
		_, err := useCase.ListTransactions(context.Background(), "user-1", entity.RoleUser, 7)

		assert.NoError(t, err)
		transactionRepo.AssertExpectations(t)
	})

	t.Run("oversized limits are clamped", func(t *testing.T) {
		transactionRepo := new(persistence.MockTransactionRepository)
		transactionRepo.On("ListForUser", mock.Anything, "user-1", MaxHistoryLimit).Return(sample, nil)

		useCase := NewHistoryUseCase(transactionRepo)
		_, err := useCase.ListTransactions(context.Background(), "user-1", entity.RoleUser, 5000)

		assert.NoError(t, err)
		transactionRepo.AssertExpectations(t)
	})

	t.Run("agents have an empty history", func(t *testing.T) {
		transactionRepo := new(persistence.MockTransactionRepository)

		useCase := NewHistoryUseCase(transactionRepo)
		txns, err := useCase.ListTransactions(context.Background(), "agent-1", entity.RoleAgent, 10)

		assert.NoError(t, err)
		assert.Empty(t, txns)
		transactionRepo.AssertNotCalled(t, "ListForUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty user ID is rejected", func(t *testing.T) {
		useCase := NewHistoryUseCase(new(persistence.MockTransactionRepository))

		_, err := useCase.ListTransactions(context.Background(), "", entity.RoleUser, 10)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}
