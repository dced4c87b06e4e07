package persistence

import (
	"context"

	domainpersistence "github.com/propstake/token-ledger/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock implementation of the UnitOfWork port. Begin
// returns the given context unchanged so use case code can keep passing it
// around.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return ctx, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetAccountRepository(ctx context.Context) domainpersistence.AccountRepository {
	args := m.Called(ctx)
	return args.Get(0).(domainpersistence.AccountRepository)
}

func (m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) domainpersistence.TransactionRepository {
	args := m.Called(ctx)
	return args.Get(0).(domainpersistence.TransactionRepository)
}
