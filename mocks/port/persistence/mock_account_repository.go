package persistence

import (
	"context"
	"time"

	"github.com/propstake/token-ledger/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of the AccountRepository port
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.TokenAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenAccount), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.TokenAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Credit(ctx context.Context, userID string, tokenAmount int64, purchasedAt time.Time) error {
	args := m.Called(ctx, userID, tokenAmount, purchasedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) Debit(ctx context.Context, userID string, tokenAmount int64) error {
	args := m.Called(ctx, userID, tokenAmount)
	return args.Error(0)
}
