package dto

import "github.com/propstake/token-ledger/internal/domain/entity"

// PaymentMethodResponse represents a payment rail as exposed to clients.
// Amount limits are formatted as 2-decimal currency strings.
type PaymentMethodResponse struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
	FeePercent  string `json:"feePercent"`
	MinAmount   string `json:"minAmount"`
	MaxAmount   string `json:"maxAmount"`
}

// PaymentMethodListResponse wraps the active rail catalog
type PaymentMethodListResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
}

// FromPaymentMethod maps a payment method entity to its API representation
func FromPaymentMethod(m *entity.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		Key:         m.Key,
		DisplayName: m.DisplayName,
		Category:    string(m.Category),
		FeePercent:  m.FeePercent,
		MinAmount:   entity.CentsToString(m.MinAmountCents),
		MaxAmount:   entity.CentsToString(m.MaxAmountCents),
	}
}
