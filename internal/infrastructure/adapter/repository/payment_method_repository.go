package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PaymentMethodRepository implements the payment rail catalog using GORM
type PaymentMethodRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository instance
func NewPaymentMethodRepository(db *gorm.DB, logger coreport.Logger) *PaymentMethodRepository {
	return &PaymentMethodRepository{
		db:     db,
		logger: logger,
	}
}

// modelToEntity converts a payment method model to an entity
func (r *PaymentMethodRepository) modelToEntity(m *model.PaymentMethod) entity.PaymentMethod {
	return entity.PaymentMethod{
		ID:             m.ID,
		Key:            m.Key,
		DisplayName:    m.DisplayName,
		Category:       entity.SettlementCategory(m.Category),
		FeePercent:     m.FeePercent,
		MinAmountCents: m.MinAmountCents,
		MaxAmountCents: m.MaxAmountCents,
		Active:         m.Active,
		Priority:       m.Priority,
		CreatedAt:      m.CreatedAt,
	}
}

// ListActive returns active methods in stable (priority, id) order
func (r *PaymentMethodRepository) ListActive(ctx context.Context) ([]entity.PaymentMethod, error) {
	var methodModels []model.PaymentMethod
	result := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&methodModels)

	if result.Error != nil {
		r.logger.Error("Failed to list payment methods", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	methods := make([]entity.PaymentMethod, 0, len(methodModels))
	for i := range methodModels {
		methods = append(methods, r.modelToEntity(&methodModels[i]))
	}
	return methods, nil
}

// GetByKey retrieves a method by its unique internal name
func (r *PaymentMethodRepository) GetByKey(ctx context.Context, key string) (*entity.PaymentMethod, error) {
	var methodModel model.PaymentMethod
	result := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&methodModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPaymentMethodNotFound
		}
		r.logger.Error("Failed to get payment method", map[string]any{
			"method_key": key,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	method := r.modelToEntity(&methodModel)
	return &method, nil
}
