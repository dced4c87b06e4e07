package entity

import "time"

// SettlementCategory groups payment methods by how their purchases settle
type SettlementCategory string

// Settlement categories
const (
	CategoryCard         SettlementCategory = "card"
	CategoryMobileWallet SettlementCategory = "mobile_wallet"
	CategoryBankTransfer SettlementCategory = "bank_transfer"
	CategoryCrypto       SettlementCategory = "crypto"
)

// PaymentMethod describes a payment rail the platform accepts. Fee and limit
// edits are an administrative concern outside this service; from here the
// catalog is read-only. Historical transactions keep the fee that applied at
// creation time via the amount stored on the transaction row.
type PaymentMethod struct {
	ID             uint64
	Key            string // unique internal name, e.g. "easypaisa", "crypto_usdt"
	DisplayName    string
	Category       SettlementCategory
	FeePercent     string // 2-decimal string, 0-100
	MinAmountCents int64
	MaxAmountCents int64
	Active         bool
	Priority       int
	CreatedAt      time.Time
}

// FeeBasisPoints parses the fee percentage into basis points
func (m *PaymentMethod) FeeBasisPoints() (int64, error) {
	return PercentToBasisPoints(m.FeePercent)
}

// SettlesSynchronously reports whether purchases through this method
// complete within the request
func (m *PaymentMethod) SettlesSynchronously() bool {
	return m.Category == CategoryCard || m.Category == CategoryMobileWallet
}

// AwaitsManualVerification reports whether the back-office must verify the
// payment before completion
func (m *PaymentMethod) AwaitsManualVerification() bool {
	return m.Category == CategoryBankTransfer
}

// SettlesDeferred reports whether an out-of-band worker completes the
// purchase after a confirmation delay
func (m *PaymentMethod) SettlesDeferred() bool {
	return m.Category == CategoryCrypto
}

// WithinLimits checks the fee-inclusive total against the method's bounds.
// Bounds are inclusive.
func (m *PaymentMethod) WithinLimits(totalCents int64) bool {
	return totalCents >= m.MinAmountCents && totalCents <= m.MaxAmountCents
}
