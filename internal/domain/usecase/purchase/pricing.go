package purchase

import (
	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
)

// Quote is the priced breakdown of a purchase request. All amounts are in
// cents; the fee-inclusive total is what the method limits apply to.
type Quote struct {
	TokenAmount int64
	BaseCents   int64
	FeeCents    int64
	TotalCents  int64
}

// ComputeQuote prices a token purchase against a payment method.
// baseAmount = tokenAmount * tokenRate, processingFee = baseAmount *
// feePercent / 100, totalAmount = baseAmount + processingFee. The limit
// check runs on the fee-inclusive total, inclusive on both bounds.
func ComputeQuote(method *entity.PaymentMethod, tokenAmount, tokenRate int64) (*Quote, error) {
	if tokenAmount <= 0 {
		return nil, errs.ErrInvalidTokenAmount
	}

	feeBps, err := method.FeeBasisPoints()
	if err != nil {
		return nil, err
	}

	baseCents := tokenAmount * tokenRate * 100
	feeCents := entity.ApplyFee(baseCents, feeBps)
	totalCents := baseCents + feeCents

	if !method.WithinLimits(totalCents) {
		return nil, errs.NewAmountOutOfRangeError(
			method.Key,
			entity.CentsToString(totalCents),
			entity.CentsToString(method.MinAmountCents),
			entity.CentsToString(method.MaxAmountCents),
		)
	}

	return &Quote{
		TokenAmount: tokenAmount,
		BaseCents:   baseCents,
		FeeCents:    feeCents,
		TotalCents:  totalCents,
	}, nil
}
