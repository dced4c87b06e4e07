package persistence

import (
	"context"

	"github.com/propstake/token-ledger/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockPaymentMethodRepository is a mock implementation of the PaymentMethodRepository port
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) ListActive(ctx context.Context) ([]entity.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) GetByKey(ctx context.Context, key string) (*entity.PaymentMethod, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentMethod), args.Error(1)
}
