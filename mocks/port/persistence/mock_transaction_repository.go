package persistence

import (
	"context"
	"time"

	"github.com/propstake/token-ledger/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock implementation of the TransactionRepository port
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *entity.TokenTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.TokenTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenTransaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.TokenTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenTransaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, txn *entity.TokenTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListForUser(ctx context.Context, userID string, limit int) ([]entity.TokenTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TokenTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListPendingDeferred(ctx context.Context, olderThan time.Time, limit int) ([]entity.TokenTransaction, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TokenTransaction), args.Error(1)
}
