package persistence

import (
	"context"

	"github.com/propstake/token-ledger/internal/domain/entity"
)

// PaymentMethodRepository reads the payment rail catalog. The catalog is
// read-only from this service; fee and limit edits happen elsewhere.
type PaymentMethodRepository interface {
	// ListActive returns active methods in (priority, id) order. An empty
	// result is valid.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListActive(ctx context.Context) ([]entity.PaymentMethod, error)

	// GetByKey retrieves a method by its unique internal name
	//
	// Possible errors:
	// - ErrPaymentMethodNotFound: If no method has the given key
	// - ErrDatabaseConnection: If database connection fails
	GetByKey(ctx context.Context, key string) (*entity.PaymentMethod, error)
}
