package dto

import (
	"time"

	"github.com/propstake/token-ledger/internal/domain/entity"
	"github.com/propstake/token-ledger/internal/domain/usecase/purchase"
)

// PurchaseRequest represents the API request for buying tokens
type PurchaseRequest struct {
	TokenAmount      int64  `json:"tokenAmount" binding:"required"`
	PaymentMethod    string `json:"paymentMethod" binding:"required"`
	PaymentReference string `json:"paymentReference"`
}

// PurchaseResponse represents the API response for a purchase request
type PurchaseResponse struct {
	TransactionID    uint64 `json:"transactionId"`
	TokenAmount      int64  `json:"tokenAmount"`
	BaseAmount       string `json:"baseAmount"`
	ProcessingFee    string `json:"processingFee"`
	TotalAmount      string `json:"totalAmount"`
	PaymentReference string `json:"paymentReference"`
	Status           string `json:"status"`
	Message          string `json:"message"`
}

// FromPurchaseResult maps a purchase result to its API representation
func FromPurchaseResult(r *purchase.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		TransactionID:    r.TransactionID,
		TokenAmount:      r.TokenAmount,
		BaseAmount:       r.BaseAmount,
		ProcessingFee:    r.ProcessingFee,
		TotalAmount:      r.TotalAmount,
		PaymentReference: r.PaymentReference,
		Status:           string(r.Status),
		Message:          r.Message,
	}
}

// SpendRequest represents the API request for spending tokens
type SpendRequest struct {
	TokenAmount int64  `json:"tokenAmount" binding:"required"`
	Description string `json:"description"`
}

// SpendResponse represents the API response for a token spend
type SpendResponse struct {
	TransactionID uint64 `json:"transactionId"`
	TokenAmount   int64  `json:"tokenAmount"`
	Amount        string `json:"amount"`
}

// FromSpendResult maps a spend result to its API representation
func FromSpendResult(r *purchase.SpendResult) SpendResponse {
	return SpendResponse{
		TransactionID: r.TransactionID,
		TokenAmount:   r.TokenAmount,
		Amount:        r.Amount,
	}
}

// AccountResponse represents the API response for the token account view
type AccountResponse struct {
	UserID         string     `json:"userId"`
	Balance        int64      `json:"balance"`
	TotalPurchased int64      `json:"totalPurchased"`
	TotalSpent     int64      `json:"totalSpent"`
	PKRValue       string     `json:"pkrValue"`
	LastPurchase   *time.Time `json:"lastPurchase"`
}

// FromAccountView maps an account view to its API representation
func FromAccountView(v entity.AccountView) AccountResponse {
	return AccountResponse{
		UserID:         v.UserID,
		Balance:        v.Balance,
		TotalPurchased: v.TotalPurchased,
		TotalSpent:     v.TotalSpent,
		PKRValue:       v.PKRValue,
		LastPurchase:   v.LastPurchaseAt,
	}
}

// TransactionResponse represents a ledger entry as exposed to clients
type TransactionResponse struct {
	TransactionID    uint64     `json:"transactionId"`
	Type             string     `json:"type"`
	TokenAmount      int64      `json:"tokenAmount"`
	Amount           string     `json:"amount"`
	PaymentMethod    string     `json:"paymentMethod,omitempty"`
	PaymentReference string     `json:"paymentReference"`
	Status           string     `json:"status"`
	Description      string     `json:"description"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt"`
}

// TransactionListResponse wraps the per-user transaction history
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// FromTransaction maps a ledger entity to its API representation
func FromTransaction(t *entity.TokenTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.ID,
		Type:             string(t.Type),
		TokenAmount:      t.TokenAmount,
		Amount:           entity.CentsToString(t.AmountCents),
		PaymentMethod:    t.PaymentMethodKey,
		PaymentReference: t.PaymentReference,
		Status:           string(t.Status),
		Description:      t.Description,
		CreatedAt:        t.CreatedAt,
		CompletedAt:      t.CompletedAt,
	}
}

// ResolveTransactionRequest represents the back-office status decision for a
// manually verified purchase
type ResolveTransactionRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed cancelled"`
}

// ResolveTransactionResponse confirms the applied decision
type ResolveTransactionResponse struct {
	TransactionID uint64 `json:"transactionId"`
	Status        string `json:"status"`
}
