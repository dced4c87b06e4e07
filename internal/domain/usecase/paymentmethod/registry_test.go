package paymentmethod

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	"github.com/propstake/token-ledger/mocks/port/core"
	"github.com/propstake/token-ledger/mocks/port/persistence"
)

func TestRegistry_ListActive(t *testing.T) {
	t.Run("should return the catalog in repository order", func(t *testing.T) {
		methodRepo := new(persistence.MockPaymentMethodRepository)
		methods := []entity.PaymentMethod{
			{Key: "card", Priority: 1},
			{Key: "easypaisa", Priority: 2},
		}
		methodRepo.On("ListActive", context.Background()).Return(methods, nil)

		registry := NewRegistry(methodRepo, core.RelaxedMockLogger())
		got, err := registry.ListActive(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, methods, got)
	})

	t.Run("an empty catalog is valid", func(t *testing.T) {
		methodRepo := new(persistence.MockPaymentMethodRepository)
		methodRepo.On("ListActive", context.Background()).Return([]entity.PaymentMethod{}, nil)

		registry := NewRegistry(methodRepo, core.RelaxedMockLogger())
		got, err := registry.ListActive(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("repository failures propagate", func(t *testing.T) {
		methodRepo := new(persistence.MockPaymentMethodRepository)
		methodRepo.On("ListActive", context.Background()).Return(nil, errs.ErrDatabaseConnection)

		registry := NewRegistry(methodRepo, core.RelaxedMockLogger())
		_, err := registry.ListActive(context.Background())

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestRegistry_FindByKey(t *testing.T) {
	t.Run("should resolve a known key", func(t *testing.T) {
		methodRepo := new(persistence.MockPaymentMethodRepository)
		method := &entity.PaymentMethod{Key: "jazzcash", Category: entity.CategoryMobileWallet}
		methodRepo.On("GetByKey", context.Background(), "jazzcash").Return(method, nil)

		registry := NewRegistry(methodRepo, core.RelaxedMockLogger())
		got, err := registry.FindByKey(context.Background(), "jazzcash")

		assert.NoError(t, err)
		assert.Equal(t, method, got)
	})

	t.Run("unknown keys report not found", func(t *testing.T) {
		methodRepo := new(persistence.MockPaymentMethodRepository)
		methodRepo.On("GetByKey", context.Background(), "paypal").Return(nil, errs.ErrPaymentMethodNotFound)

		registry := NewRegistry(methodRepo, core.RelaxedMockLogger())
		_, err := registry.FindByKey(context.Background(), "paypal")

		assert.ErrorIs(t, err, errs.ErrPaymentMethodNotFound)
	})
}
