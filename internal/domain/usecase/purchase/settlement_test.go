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

func pendingPurchase(id uint64, userID string) *entity.TokenTransaction {
	return &entity.TokenTransaction{
		ID:               id,
		UserID:           userID,
		Type:             entity.TypePurchase,
		TokenAmount:      5,
		AmountCents:      512500,
		PaymentMethodKey: "usdt_trc20",
		PaymentReference: "0xabc",
		Status:           entity.StatusPending,
		CreatedAt:        time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	}
}

func TestService_Settle(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("settling a pending purchase credits the account once", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.expectUnitOfWork(ctx)
		f.txnRepo.On("GetByIDForUpdate", ctx, uint64(9)).Return(pendingPurchase(9, "user-1"), nil)
		f.txnRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entity.TokenTransaction")).
			Run(func(args mock.Arguments) {
				txn := args.Get(1).(*entity.TokenTransaction)
				assert.Equal(t, entity.StatusCompleted, txn.Status)
				assert.NotNil(t, txn.CompletedAt)
			}).Return(nil)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.acctRepo.On("Credit", ctx, "user-1", int64(5), fixedTime).Return(nil)

		err := f.service.Settle(ctx, 9)

		assert.NoError(t, err)
		f.txnRepo.AssertExpectations(t)
		f.acctRepo.AssertExpectations(t)
		f.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("settling an already completed transaction is a no-op", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		completedAt := fixedTime.Add(-time.Hour)
		txn := pendingPurchase(9, "user-1")
		txn.Status = entity.StatusCompleted
		txn.CompletedAt = &completedAt

		f.expectUnitOfWork(ctx)
		f.txnRepo.On("GetByIDForUpdate", ctx, uint64(9)).Return(txn, nil)

		err := f.service.Settle(ctx, 9)

		assert.NoError(t, err)
		f.txnRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
		f.acctRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("missing transaction surfaces not found", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.expectUnitOfWork(ctx)
		f.txnRepo.On("GetByIDForUpdate", ctx, uint64(404)).Return(nil, errs.ErrTransactionNotFound)

		err := f.service.Settle(ctx, 404)

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		f.uow.AssertCalled(t, "Rollback", ctx)
	})

	t.Run("settling a failed transaction is rejected", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		txn := pendingPurchase(9, "user-1")
		txn.Status = entity.StatusFailed

		f.expectUnitOfWork(ctx)
		f.txnRepo.On("GetByIDForUpdate", ctx, uint64(9)).Return(txn, nil)

		err := f.service.Settle(ctx, 9)

		assert.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
		f.acctRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Resolve(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("resolving to completed routes through settlement", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		txn := pendingPurchase(9, "user-1")
		txn.PaymentMethodKey = "bank_transfer"

		f.expectUnitOfWork(ctx)
		f.txnRepo.On("GetByIDForUpdate", ctx, uint64(9)).Return(txn, nil)
		f.txnRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.acctRepo.On("Credit", ctx, "user-1", int64(5), fixedTime).Return(nil)

		err := f.service.Resolve(ctx, 9, entity.StatusCompleted)

		assert.NoError(t, err)
		f.acctRepo.AssertExpectations(t)
	})

	t.Run("resolving to failed has no balance effect", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.expectUnitOfWork(ctx)
		f.txnRepo.On("GetByIDForUpdate", ctx, uint64(9)).Return(pendingPurchase(9, "user-1"), nil)
		f.txnRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entity.TokenTransaction")).
			Run(func(args mock.Arguments) {
				txn := args.Get(1).(*entity.TokenTransaction)
				assert.Equal(t, entity.StatusFailed, txn.Status)
				assert.Nil(t, txn.CompletedAt)
			}).Return(nil)

		err := f.service.Resolve(ctx, 9, entity.StatusFailed)

		assert.NoError(t, err)
		f.uow.AssertNotCalled(t, "GetAccountRepository", mock.Anything)
		f.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("resolving a terminal transaction is rejected", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		txn := pendingPurchase(9, "user-1")
		txn.Status = entity.StatusCancelled

		f.expectUnitOfWork(ctx)
		f.txnRepo.On("GetByIDForUpdate", ctx, uint64(9)).Return(txn, nil)

		err := f.service.Resolve(ctx, 9, entity.StatusFailed)

		assert.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("resolving to pending is rejected outright", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		err := f.service.Resolve(ctx, 9, entity.StatusPending)

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
