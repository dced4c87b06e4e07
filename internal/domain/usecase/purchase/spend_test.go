package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
)

func TestService_Spend(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("spend debits the account and records a completed entry", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.refGen.On("NewReference").Return("TKN-SPEND-1")
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.acctRepo.On("Debit", ctx, "user-1", int64(3)).Return(nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).
			Run(func(args mock.Arguments) {
				txn := args.Get(1).(*entity.TokenTransaction)
				txn.ID = 77

				assert.Equal(t, entity.TypeSpend, txn.Type)
				assert.Equal(t, entity.StatusCompleted, txn.Status)
				assert.Empty(t, txn.PaymentMethodKey)
			}).Return(nil)

		result, err := f.service.Spend(ctx, "user-1", entity.RoleUser, 3, "Unit booking fee")

		assert.NoError(t, err)
		assert.Equal(t, uint64(77), result.TransactionID)
		assert.Equal(t, int64(3), result.TokenAmount)
		// 3 tokens * 1000 per token = 3000.00
		assert.Equal(t, "3000.00", result.Amount)

		f.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("insufficient balance aborts the unit of work", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.refGen.On("NewReference").Return("TKN-SPEND-2")
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.acctRepo.On("Debit", ctx, "user-1", int64(10)).
			Return(errs.NewInsufficientBalanceError("user-1", 10, 2))

		_, err := f.service.Spend(ctx, "user-1", entity.RoleUser, 10, "")

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		f.txnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.AssertCalled(t, "Rollback", ctx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("agents cannot spend", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		_, err := f.service.Spend(ctx, "agent-1", entity.RoleAgent, 3, "")

		assert.ErrorIs(t, err, errs.ErrAgentForbidden)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("empty description gets a default", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.refGen.On("NewReference").Return("TKN-SPEND-3")
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.acctRepo.On("Debit", ctx, "user-1", int64(2)).Return(nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).
			Run(func(args mock.Arguments) {
				txn := args.Get(1).(*entity.TokenTransaction)
				assert.Equal(t, "Spend of 2 tokens", txn.Description)
			}).Return(nil)

		_, err := f.service.Spend(ctx, "user-1", entity.RoleUser, 2, "")
		assert.NoError(t, err)
	})
}
