package paymentmethod

import (
	"context"

	"github.com/propstake/token-ledger/internal/domain/entity"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/domain/port/persistence"
)

// Registry exposes the payment rail catalog to the rest of the domain
type Registry struct {
	methodRepo persistence.PaymentMethodRepository
	logger     coreport.Logger
}

// NewRegistry creates a new payment method registry
func NewRegistry(methodRepo persistence.PaymentMethodRepository, logger coreport.Logger) *Registry {
	return &Registry{
		methodRepo: methodRepo,
		logger:     logger,
	}
}

// ListActive returns the active payment methods in stable (priority, id)
// order. An empty catalog is a valid, if degenerate, response.
func (r *Registry) ListActive(ctx context.Context) ([]entity.PaymentMethod, error) {
	methods, err := r.methodRepo.ListActive(ctx)
	if err != nil {
		r.logger.Error("Failed to list payment methods", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}
	return methods, nil
}

// FindByKey resolves a payment method by its unique internal name
func (r *Registry) FindByKey(ctx context.Context, key string) (*entity.PaymentMethod, error) {
	method, err := r.methodRepo.GetByKey(ctx, key)
	if err != nil {
		r.logger.Warn("Payment method lookup failed", map[string]any{
			"method_key": key,
			"error":      err.Error(),
		})
		return nil, err
	}
	return method, nil
}
