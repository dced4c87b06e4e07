package migration

import (
	"context"
	"errors"
	"time"

	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Default payment rails seeded on a fresh database. Amount limits are in
// cents and apply to the fee-inclusive total.
var defaultPaymentMethods = []model.PaymentMethod{
	{
		Key:            "card",
		DisplayName:    "Debit / Credit Card",
		Category:       "card",
		FeePercent:     "2.50",
		MinAmountCents: 100_00,
		MaxAmountCents: 500_000_00,
		Active:         true,
		Priority:       1,
	},
	{
		Key:            "easypaisa",
		DisplayName:    "Easypaisa",
		Category:       "mobile_wallet",
		FeePercent:     "1.50",
		MinAmountCents: 100_00,
		MaxAmountCents: 100_000_00,
		Active:         true,
		Priority:       2,
	},
	{
		Key:            "jazzcash",
		DisplayName:    "JazzCash",
		Category:       "mobile_wallet",
		FeePercent:     "1.50",
		MinAmountCents: 100_00,
		MaxAmountCents: 100_000_00,
		Active:         true,
		Priority:       3,
	},
	{
		Key:            "bank_transfer",
		DisplayName:    "Bank Transfer",
		Category:       "bank_transfer",
		FeePercent:     "0.00",
		MinAmountCents: 1_000_00,
		MaxAmountCents: 10_000_000_00,
		Active:         true,
		Priority:       4,
	},
	{
		Key:            "usdt_trc20",
		DisplayName:    "USDT (TRC-20)",
		Category:       "crypto",
		FeePercent:     "1.00",
		MinAmountCents: 500_00,
		MaxAmountCents: 5_000_000_00,
		Active:         true,
		Priority:       5,
	},
}

// SeedDefaultPaymentMethods inserts the default rails, skipping any key that
// already exists so operator edits survive restarts
func SeedDefaultPaymentMethods(ctx context.Context, db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) error {
	var now time.Time
	if timeProvider != nil {
		now = timeProvider.Now()
	} else {
		now = time.Now()
	}

	for _, method := range defaultPaymentMethods {
		var existing model.PaymentMethod
		result := db.WithContext(ctx).Where("key = ?", method.Key).First(&existing)

		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		method.CreatedAt = now
		if err := db.WithContext(ctx).Create(&method).Error; err != nil {
			return err
		}
		logger.Info("Seeded payment method", map[string]any{
			"method_key": method.Key,
			"category":   method.Category,
		})
	}

	return nil
}
