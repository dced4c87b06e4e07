package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
)

func TestComputeQuote(t *testing.T) {
	cardMethod := &entity.PaymentMethod{
		Key:            "card",
		Category:       entity.CategoryCard,
		FeePercent:     "2.50",
		MinAmountCents: 10000,    // 100.00
		MaxAmountCents: 50000000, // 500000.00
	}

	t.Run("should price five tokens at 2.5 percent", func(t *testing.T) {
		quote, err := ComputeQuote(cardMethod, 5, 1000)

		assert.NoError(t, err)
		assert.Equal(t, int64(500000), quote.BaseCents)  // 5000.00
		assert.Equal(t, int64(12500), quote.FeeCents)    // 125.00
		assert.Equal(t, int64(512500), quote.TotalCents) // 5125.00
	})

	t.Run("zero fee method charges exactly the base", func(t *testing.T) {
		freeMethod := &entity.PaymentMethod{
			Key:            "bank_transfer",
			FeePercent:     "0.00",
			MinAmountCents: 0,
			MaxAmountCents: 1000000000,
		}

		quote, err := ComputeQuote(freeMethod, 3, 1000)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), quote.FeeCents)
		assert.Equal(t, quote.BaseCents, quote.TotalCents)
	})

	t.Run("should reject non-positive token amounts", func(t *testing.T) {
		for _, amount := range []int64{0, -1} {
			_, err := ComputeQuote(cardMethod, amount, 1000)
			assert.ErrorIs(t, err, errs.ErrInvalidTokenAmount, "amount: %d", amount)
		}
	})

	t.Run("limits apply to the fee-inclusive total", func(t *testing.T) {
		// base exactly at max, but the fee pushes the total over
		method := &entity.PaymentMethod{
			Key:            "card",
			FeePercent:     "2.50",
			MinAmountCents: 0,
			MaxAmountCents: 500000, // 5000.00
		}

		_, err := ComputeQuote(method, 5, 1000)
		assert.ErrorIs(t, err, errs.ErrAmountOutOfRange)
	})

	t.Run("inclusive bounds accept totals exactly at the limits", func(t *testing.T) {
		method := &entity.PaymentMethod{
			Key:            "card",
			FeePercent:     "2.50",
			MinAmountCents: 512500,
			MaxAmountCents: 512500,
		}

		quote, err := ComputeQuote(method, 5, 1000)
		assert.NoError(t, err)
		assert.Equal(t, int64(512500), quote.TotalCents)
	})

	t.Run("out of range error carries the formatted amounts", func(t *testing.T) {
		method := &entity.PaymentMethod{
			Key:            "easypaisa",
			FeePercent:     "1.50",
			MinAmountCents: 10000,
			MaxAmountCents: 20000,
		}

		_, err := ComputeQuote(method, 5, 1000)

		var rangeErr *errs.AmountOutOfRangeError
		assert.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, "easypaisa", rangeErr.MethodKey)
		assert.Equal(t, "5075.00", rangeErr.TotalAmount)
		assert.Equal(t, "100.00", rangeErr.MinAmount)
		assert.Equal(t, "200.00", rangeErr.MaxAmount)
	})
}
