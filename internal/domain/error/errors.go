package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeForbiddenRole        = 4030
	CodeInvalidTokenAmount   = 4001
	CodeInvalidAmount        = 4002
	CodeInvalidUserID        = 4003
	CodePaymentMethodUnknown = 4004
	CodeAmountOutOfRange     = 4005
	CodeInsufficientBalance  = 4006
	CodeInvalidTransition    = 4007
	CodeTransactionNotFound  = 4040
	CodeAccountConflict      = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrAgentForbidden is returned when an agent attempts a token operation
	ErrAgentForbidden = errors.New("agents cannot hold or purchase tokens")

	// ErrInvalidTokenAmount is returned when the token amount is not positive
	ErrInvalidTokenAmount = errors.New("token amount must be positive")

	// ErrInvalidAmount is returned when a currency amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a currency amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is empty or malformed
	ErrInvalidUserID = errors.New("user ID is required")

	// ErrPaymentMethodNotFound is returned when the payment method key is unknown
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	// ErrAmountOutOfRange is returned when the fee-inclusive total falls
	// outside the payment method's limits
	ErrAmountOutOfRange = errors.New("amount outside payment method limits")

	// ErrInsufficientBalance is returned when a spend exceeds the token balance
	ErrInsufficientBalance = errors.New("insufficient token balance")

	// ErrInvalidTransactionType is returned for unknown ledger entry types
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidStatus is returned for unknown transaction status values
	ErrInvalidStatus = errors.New("invalid transaction status")

	// ErrInvalidStatusTransition is returned when a status change would move
	// a transaction backwards out of a terminal state
	ErrInvalidStatusTransition = errors.New("status transitions are forward-only")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAccountNotFound is returned when no account row exists for a user yet
	ErrAccountNotFound = errors.New("token account not found")

	// ErrAccountConflict is returned when concurrent first-reads race to
	// create the same account row; callers resolve it by re-reading
	ErrAccountConflict = errors.New("account already exists")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrAgentForbidden):
		return CodeForbiddenRole
	case errors.Is(err, ErrInvalidTokenAmount):
		return CodeInvalidTokenAmount
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrPaymentMethodNotFound):
		return CodePaymentMethodUnknown
	case errors.Is(err, ErrAmountOutOfRange):
		return CodeAmountOutOfRange
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidStatusTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrAccountConflict):
		return CodeAccountConflict
	default:
		return CodeInternalServer
	}
}

// AmountOutOfRangeError carries the computed total and the method limits
type AmountOutOfRangeError struct {
	MethodKey   string
	TotalAmount string
	MinAmount   string
	MaxAmount   string
}

// Error implements the error interface
func (e *AmountOutOfRangeError) Error() string {
	return fmt.Sprintf("total %s is outside limits [%s, %s] of payment method %s",
		e.TotalAmount, e.MinAmount, e.MaxAmount, e.MethodKey)
}

// Is checks if the target error is an ErrAmountOutOfRange
func (e *AmountOutOfRangeError) Is(target error) bool {
	return target == ErrAmountOutOfRange
}

// LogFields returns a map of fields for structured logging
func (e *AmountOutOfRangeError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "amount_out_of_range",
		"method_key":   e.MethodKey,
		"total_amount": e.TotalAmount,
		"min_amount":   e.MinAmount,
		"max_amount":   e.MaxAmount,
		"error_code":   CodeAmountOutOfRange,
	}
}

// NewAmountOutOfRangeError creates a detailed out-of-range error
func NewAmountOutOfRangeError(methodKey, total, min, max string) error {
	return &AmountOutOfRangeError{
		MethodKey:   methodKey,
		TotalAmount: total,
		MinAmount:   min,
		MaxAmount:   max,
	}
}

// InsufficientBalanceError provides detailed error information for spends
// that exceed the available token balance
type InsufficientBalanceError struct {
	UserID      string
	TokenAmount int64
	Balance     int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: required %d tokens, available %d",
		e.UserID, e.TokenAmount, e.Balance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "insufficient_balance",
		"user_id":      e.UserID,
		"token_amount": e.TokenAmount,
		"balance":      e.Balance,
		"error_code":   CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID string, tokenAmount, balance int64) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		TokenAmount: tokenAmount,
		Balance:     balance,
	}
}

// TransitionError describes a rejected status transition
type TransitionError struct {
	TransactionID uint64
	From          string
	To            string
}

// Error implements the error interface
func (e *TransitionError) Error() string {
	return fmt.Sprintf("transaction %d cannot move from %s to %s", e.TransactionID, e.From, e.To)
}

// Is checks if the target error is an ErrInvalidStatusTransition
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "invalid_transition",
		"transaction_id": e.TransactionID,
		"from":           e.From,
		"to":             e.To,
		"error_code":     CodeInvalidTransition,
	}
}

// NewTransitionError creates a detailed transition error
func NewTransitionError(transactionID uint64, from, to string) error {
	return &TransitionError{TransactionID: transactionID, From: from, To: to}
}

// IsForbiddenError checks if the error is a role-authorization failure
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrAgentForbidden)
}

// IsValidationError checks if the error is any client-input validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTokenAmount) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrPaymentMethodNotFound) ||
		errors.Is(err, ErrAmountOutOfRange) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInvalidRequest)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsConflictError checks if the error is an account-creation or transition conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAccountConflict) ||
		errors.Is(err, ErrInvalidStatusTransition)
}
