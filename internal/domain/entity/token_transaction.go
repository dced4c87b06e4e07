package entity

import (
	"fmt"
	"time"

	errs "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
)

// TransactionType classifies ledger entries
type TransactionType string

// Transaction types. Refund is reserved for the back-office; no workflow in
// this service produces it.
const (
	TypePurchase TransactionType = "purchase"
	TypeSpend    TransactionType = "spend"
	TypeRefund   TransactionType = "refund"
)

// TransactionStatus defines the lifecycle states of a ledger entry
type TransactionStatus string

// Transaction statuses
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// TokenTransaction is one entry in the append-oriented token ledger
type TokenTransaction struct {
	ID               uint64
	UserID           string
	Type             TransactionType
	TokenAmount      int64 // always > 0
	AmountCents      int64 // currency amount in cents, always > 0
	PaymentMethodKey string // empty for spend/refund
	PaymentReference string
	Status           TransactionStatus
	Description      string
	CreatedAt        time.Time
	CompletedAt      *time.Time // set exactly once, on the transition into completed
}

// NewTokenTransaction creates a pending ledger entry with basic validation
func NewTokenTransaction(
	userID string,
	txType TransactionType,
	tokenAmount int64,
	amountCents int64,
	paymentMethodKey string,
	paymentReference string,
	description string,
	timeProvider coreport.TimeProvider,
) (*TokenTransaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidTransactionType(string(txType)) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}
	if tokenAmount <= 0 {
		return nil, errs.ErrInvalidTokenAmount
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: currency amount must be positive", errs.ErrInvalidAmount)
	}
	if txType == TypePurchase && paymentMethodKey == "" {
		return nil, fmt.Errorf("%w: payment method is required for purchases", errs.ErrInvalidRequest)
	}

	return &TokenTransaction{
		UserID:           userID,
		Type:             txType,
		TokenAmount:      tokenAmount,
		AmountCents:      amountCents,
		PaymentMethodKey: paymentMethodKey,
		PaymentReference: paymentReference,
		Status:           StatusPending,
		Description:      description,
		CreatedAt:        timeProvider.Now(),
	}, nil
}

// IsTerminal reports whether the status admits no further transitions
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// TransitionTo moves the transaction forward. Transitions out of a terminal
// state are rejected; a transition into the current status is a no-op so
// settlement retries stay idempotent. CompletedAt is stamped exactly once.
func (t *TokenTransaction) TransitionTo(newStatus TransactionStatus, timeProvider coreport.TimeProvider) error {
	if !IsValidStatus(string(newStatus)) {
		return fmt.Errorf("%w: %s", errs.ErrInvalidStatus, newStatus)
	}
	if newStatus == t.Status {
		return nil
	}
	if t.Status.IsTerminal() {
		return errs.NewTransitionError(t.ID, string(t.Status), string(newStatus))
	}

	t.Status = newStatus
	if newStatus == StatusCompleted && t.CompletedAt == nil {
		now := timeProvider.Now()
		t.CompletedAt = &now
	}
	return nil
}

// IsCompleted reports whether the transaction has settled
func (t *TokenTransaction) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsPending reports whether the transaction still awaits settlement
func (t *TokenTransaction) IsPending() bool {
	return t.Status == StatusPending
}

// Amount returns the currency amount as a 2-decimal string
func (t *TokenTransaction) Amount() string {
	return CentsToString(t.AmountCents)
}

// IsValidTransactionType validates a ledger entry type
func IsValidTransactionType(txType string) bool {
	return txType == string(TypePurchase) ||
		txType == string(TypeSpend) ||
		txType == string(TypeRefund)
}

// IsValidStatus validates a transaction status value
func IsValidStatus(status string) bool {
	return status == string(StatusPending) ||
		status == string(StatusCompleted) ||
		status == string(StatusFailed) ||
		status == string(StatusCancelled)
}
