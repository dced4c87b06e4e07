package purchase

import (
	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
)

// validatePurchaseRequest runs the synchronous pre-write checks for a
// purchase. All rejections happen before anything touches storage.
func validatePurchaseRequest(userID string, role entity.Role, tokenAmount int64, paymentMethodKey string) error {
	if role.IsAgent() {
		return errs.ErrAgentForbidden
	}
	if userID == "" {
		return errs.ErrInvalidUserID
	}
	if tokenAmount <= 0 {
		return errs.ErrInvalidTokenAmount
	}
	if paymentMethodKey == "" {
		return errs.ErrPaymentMethodNotFound
	}
	return nil
}

// validateSpendRequest runs the synchronous pre-write checks for a spend
func validateSpendRequest(userID string, role entity.Role, tokenAmount int64) error {
	if role.IsAgent() {
		return errs.ErrAgentForbidden
	}
	if userID == "" {
		return errs.ErrInvalidUserID
	}
	if tokenAmount <= 0 {
		return errs.ErrInvalidTokenAmount
	}
	return nil
}
