package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	"github.com/propstake/token-ledger/internal/domain/usecase/paymentmethod"
	"github.com/propstake/token-ledger/mocks/port/core"
	"github.com/propstake/token-ledger/mocks/port/persistence"
)

const testTokenRate = int64(1000)

// purchaseFixture bundles the mocked dependencies of one purchase service
type purchaseFixture struct {
	uow        *persistence.MockUnitOfWork
	methodRepo *persistence.MockPaymentMethodRepository
	acctRepo   *persistence.MockAccountRepository
	txnRepo    *persistence.MockTransactionRepository
	tp         *core.MockTimeProvider
	refGen     *core.MockReferenceGenerator
	service    *Service
}

func newPurchaseFixture(fixedTime time.Time) *purchaseFixture {
	f := &purchaseFixture{
		uow:        new(persistence.MockUnitOfWork),
		methodRepo: new(persistence.MockPaymentMethodRepository),
		acctRepo:   new(persistence.MockAccountRepository),
		txnRepo:    new(persistence.MockTransactionRepository),
		tp:         new(core.MockTimeProvider),
		refGen:     new(core.MockReferenceGenerator),
	}

	f.tp.On("Now").Return(fixedTime)

	logger := core.RelaxedMockLogger()
	registry := paymentmethod.NewRegistry(f.methodRepo, logger)
	f.service = NewService(f.uow, registry, f.tp, f.refGen, logger, testTokenRate)
	return f
}

// expectUnitOfWork wires Begin/Commit/Rollback and the repository getters
func (f *purchaseFixture) expectUnitOfWork(ctx context.Context) {
	f.uow.On("Begin", ctx).Return(ctx, nil)
	f.uow.On("GetTransactionRepository", ctx).Return(f.txnRepo)
	f.uow.On("GetAccountRepository", ctx).Return(f.acctRepo)
	f.uow.On("Commit", ctx).Return(nil).Maybe()
	f.uow.On("Rollback", ctx).Return(nil).Maybe()
}

func cardMethod() *entity.PaymentMethod {
	return &entity.PaymentMethod{
		ID:             1,
		Key:            "card",
		DisplayName:    "Debit / Credit Card",
		Category:       entity.CategoryCard,
		FeePercent:     "2.50",
		MinAmountCents: 10000,
		MaxAmountCents: 50000000,
		Active:         true,
	}
}

func cryptoMethod() *entity.PaymentMethod {
	return &entity.PaymentMethod{
		ID:             5,
		Key:            "usdt_trc20",
		DisplayName:    "USDT (TRC-20)",
		Category:       entity.CategoryCrypto,
		FeePercent:     "1.00",
		MinAmountCents: 50000,
		MaxAmountCents: 500000000,
		Active:         true,
	}
}

func bankMethod() *entity.PaymentMethod {
	return &entity.PaymentMethod{
		ID:             4,
		Key:            "bank_transfer",
		DisplayName:    "Bank Transfer",
		Category:       entity.CategoryBankTransfer,
		FeePercent:     "0.00",
		MinAmountCents: 100000,
		MaxAmountCents: 1000000000,
		Active:         true,
	}
}

func existingAccount(userID string) *entity.TokenAccount {
	return &entity.TokenAccount{UserID: userID}
}

func TestService_Purchase(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("card purchase settles inside the request", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.methodRepo.On("GetByKey", ctx, "card").Return(cardMethod(), nil)
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.TokenTransaction).ID = 42
			}).Return(nil)
		f.txnRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.acctRepo.On("Credit", ctx, "user-1", int64(5), fixedTime).Return(nil)

		result, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "card", "PAY-REF-1")

		assert.NoError(t, err)
		assert.Equal(t, uint64(42), result.TransactionID)
		assert.Equal(t, "5000.00", result.BaseAmount)
		assert.Equal(t, "125.00", result.ProcessingFee)
		assert.Equal(t, "5125.00", result.TotalAmount)
		assert.Equal(t, "PAY-REF-1", result.PaymentReference)
		assert.Equal(t, entity.StatusCompleted, result.Status)

		f.txnRepo.AssertExpectations(t)
		f.acctRepo.AssertExpectations(t)
		f.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("crypto purchase stays pending for the settlement worker", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.methodRepo.On("GetByKey", ctx, "usdt_trc20").Return(cryptoMethod(), nil)
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.TokenTransaction).ID = 43
			}).Return(nil)

		result, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "usdt_trc20", "0xabc")

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusPending, result.Status)
		assert.Contains(t, result.Message, "network confirmation")

		// no synchronous settlement, so no status update and no credit
		f.txnRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
		f.acctRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("bank transfer awaits manual verification", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.methodRepo.On("GetByKey", ctx, "bank_transfer").Return(bankMethod(), nil)
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)

		result, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "bank_transfer", "SLIP-77")

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusPending, result.Status)
		assert.Contains(t, result.Message, "bank transfer verification")
	})

	t.Run("missing payment reference gets a generated one", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.refGen.On("NewReference").Return("TKN-GENERATED")
		f.methodRepo.On("GetByKey", ctx, "card").Return(cardMethod(), nil)
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.txnRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.acctRepo.On("Credit", ctx, "user-1", int64(5), fixedTime).Return(nil)

		result, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "card", "")

		assert.NoError(t, err)
		assert.Equal(t, "TKN-GENERATED", result.PaymentReference)
		f.refGen.AssertExpectations(t)
	})

	t.Run("first purchase lazily creates the account", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.methodRepo.On("GetByKey", ctx, "card").Return(cardMethod(), nil)
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(nil, errs.ErrAccountNotFound)
		f.acctRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenAccount")).Return(nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.txnRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.acctRepo.On("Credit", ctx, "user-1", int64(5), fixedTime).Return(nil)

		_, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "card", "PAY-REF-1")

		assert.NoError(t, err)
		f.acctRepo.AssertExpectations(t)
	})

	t.Run("losing the account creation race is not an error", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.methodRepo.On("GetByKey", ctx, "card").Return(cardMethod(), nil)
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(nil, errs.ErrAccountNotFound)
		f.acctRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenAccount")).Return(errs.ErrAccountConflict)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.txnRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entity.TokenTransaction")).Return(nil)
		f.acctRepo.On("Credit", ctx, "user-1", int64(5), fixedTime).Return(nil)

		_, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "card", "PAY-REF-1")

		assert.NoError(t, err)
	})

	t.Run("agents are rejected before any lookup", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		_, err := f.service.Purchase(ctx, "agent-1", entity.RoleAgent, 5, "card", "")

		assert.ErrorIs(t, err, errs.ErrAgentForbidden)
		f.methodRepo.AssertNotCalled(t, "GetByKey", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("unknown payment method is rejected before any write", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.methodRepo.On("GetByKey", ctx, "paypal").Return(nil, errs.ErrPaymentMethodNotFound)

		_, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "paypal", "")

		assert.ErrorIs(t, err, errs.ErrPaymentMethodNotFound)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("out of range totals never reach storage", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		method := cardMethod()
		method.MaxAmountCents = 500000 // total 5125.00 exceeds this

		f.methodRepo.On("GetByKey", ctx, "card").Return(method, nil)

		_, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "card", "")

		assert.ErrorIs(t, err, errs.ErrAmountOutOfRange)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.txnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ledger write failure rolls back without a result", func(t *testing.T) {
		ctx := context.Background()
		f := newPurchaseFixture(fixedTime)

		f.methodRepo.On("GetByKey", ctx, "card").Return(cardMethod(), nil)
		f.expectUnitOfWork(ctx)
		f.acctRepo.On("GetByUserID", ctx, "user-1").Return(existingAccount("user-1"), nil)
		f.txnRepo.On("Create", ctx, mock.AnythingOfType("*entity.TokenTransaction")).
			Return(errs.ErrDatabaseConnection)

		_, err := f.service.Purchase(ctx, "user-1", entity.RoleUser, 5, "card", "PAY-REF-1")

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.uow.AssertCalled(t, "Rollback", ctx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
