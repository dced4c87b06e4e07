package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/domain/port/persistence"
	"github.com/propstake/token-ledger/internal/domain/usecase/paymentmethod"
)

// PurchaseResult is returned to the route layer after a purchase request
type PurchaseResult struct {
	TransactionID    uint64
	TokenAmount      int64
	BaseAmount       string
	ProcessingFee    string
	TotalAmount      string
	PaymentReference string
	Status           entity.TransactionStatus
	Message          string
}

// SpendResult is returned after a token spend
type SpendResult struct {
	TransactionID uint64
	TokenAmount   int64
	Amount        string
}

// Service orchestrates the purchase workflow: validation, fee computation,
// ledger insertion and settlement. The ledger write and the balance effect
// always share one unit of work.
type Service struct {
	uow          persistence.UnitOfWork
	registry     *paymentmethod.Registry
	timeProvider coreport.TimeProvider
	refGen       coreport.ReferenceGenerator
	logger       coreport.Logger
	tokenRate    int64
}

// NewService creates a purchase service. tokenRate is the shared
// currency-units-per-token constant; the account projector must be
// constructed with the same value.
func NewService(
	uow persistence.UnitOfWork,
	registry *paymentmethod.Registry,
	timeProvider coreport.TimeProvider,
	refGen coreport.ReferenceGenerator,
	logger coreport.Logger,
	tokenRate int64,
) *Service {
	return &Service{
		uow:          uow,
		registry:     registry,
		timeProvider: timeProvider,
		refGen:       refGen,
		logger:       logger,
		tokenRate:    tokenRate,
	}
}

// Purchase processes a token purchase request. Synchronous categories (card,
// mobile wallet) settle inside the request; bank transfers await back-office
// verification and crypto purchases await the settlement worker.
func (s *Service) Purchase(
	ctx context.Context,
	userID string,
	role entity.Role,
	tokenAmount int64,
	paymentMethodKey string,
	paymentReference string,
) (*PurchaseResult, error) {
	if err := validatePurchaseRequest(userID, role, tokenAmount, paymentMethodKey); err != nil {
		return nil, err
	}

	method, err := s.registry.FindByKey(ctx, paymentMethodKey)
	if err != nil {
		return nil, err
	}

	quote, err := ComputeQuote(method, tokenAmount, s.tokenRate)
	if err != nil {
		s.logger.Warn("Purchase rejected during pricing", map[string]any{
			"user_id":      userID,
			"method_key":   paymentMethodKey,
			"token_amount": tokenAmount,
			"error":        err.Error(),
		})
		return nil, err
	}

	if paymentReference == "" {
		paymentReference = s.refGen.NewReference()
	}
	description := fmt.Sprintf("Purchase of %d tokens via %s", tokenAmount, method.DisplayName)

	txn, err := entity.NewTokenTransaction(
		userID,
		entity.TypePurchase,
		tokenAmount,
		quote.TotalCents,
		method.Key,
		paymentReference,
		description,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	txnRepo := s.uow.GetTransactionRepository(txCtx)
	acctRepo := s.uow.GetAccountRepository(txCtx)

	if err := s.ensureAccount(txCtx, acctRepo, userID); err != nil {
		return nil, err
	}
	if err := txnRepo.Create(txCtx, txn); err != nil {
		return nil, err
	}

	if method.SettlesSynchronously() {
		if err := txn.TransitionTo(entity.StatusCompleted, s.timeProvider); err != nil {
			return nil, err
		}
		if err := txnRepo.UpdateStatus(txCtx, txn); err != nil {
			return nil, err
		}
		if err := acctRepo.Credit(txCtx, userID, tokenAmount, *txn.CompletedAt); err != nil {
			return nil, err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed = true

	s.logger.Info("Purchase processed", map[string]any{
		"user_id":        userID,
		"transaction_id": txn.ID,
		"method_key":     method.Key,
		"token_amount":   tokenAmount,
		"total_amount":   entity.CentsToString(quote.TotalCents),
		"status":         string(txn.Status),
	})

	return &PurchaseResult{
		TransactionID:    txn.ID,
		TokenAmount:      tokenAmount,
		BaseAmount:       entity.CentsToString(quote.BaseCents),
		ProcessingFee:    entity.CentsToString(quote.FeeCents),
		TotalAmount:      entity.CentsToString(quote.TotalCents),
		PaymentReference: paymentReference,
		Status:           txn.Status,
		Message:          settlementMessage(method, txn.Status),
	}, nil
}

// Spend debits tokens from a user's balance, recording a completed spend
// entry and the debit in one unit of work
func (s *Service) Spend(
	ctx context.Context,
	userID string,
	role entity.Role,
	tokenAmount int64,
	description string,
) (*SpendResult, error) {
	if err := validateSpendRequest(userID, role, tokenAmount); err != nil {
		return nil, err
	}
	if description == "" {
		description = fmt.Sprintf("Spend of %d tokens", tokenAmount)
	}

	txn, err := entity.NewTokenTransaction(
		userID,
		entity.TypeSpend,
		tokenAmount,
		tokenAmount*s.tokenRate*100,
		"",
		s.refGen.NewReference(),
		description,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	if err := txn.TransitionTo(entity.StatusCompleted, s.timeProvider); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	acctRepo := s.uow.GetAccountRepository(txCtx)
	if err := s.ensureAccount(txCtx, acctRepo, userID); err != nil {
		return nil, err
	}
	if err := acctRepo.Debit(txCtx, userID, tokenAmount); err != nil {
		return nil, err
	}
	if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed = true

	s.logger.Info("Tokens spent", map[string]any{
		"user_id":        userID,
		"transaction_id": txn.ID,
		"token_amount":   tokenAmount,
	})

	return &SpendResult{
		TransactionID: txn.ID,
		TokenAmount:   tokenAmount,
		Amount:        txn.Amount(),
	}, nil
}

// ensureAccount lazily creates the zero-seeded account row, treating a
// uniqueness violation as "someone else just created it"
func (s *Service) ensureAccount(ctx context.Context, acctRepo persistence.AccountRepository, userID string) error {
	_, err := acctRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return err
	}

	account, err := entity.NewTokenAccount(userID, s.timeProvider)
	if err != nil {
		return err
	}
	if err := acctRepo.Create(ctx, account); err != nil && !errors.Is(err, errs.ErrAccountConflict) {
		return err
	}
	return nil
}

// settlementMessage builds the user-facing status line for a purchase
func settlementMessage(method *entity.PaymentMethod, status entity.TransactionStatus) string {
	if status == entity.StatusCompleted {
		return "Tokens have been credited to your account"
	}
	if method.AwaitsManualVerification() {
		return "Purchase recorded, awaiting bank transfer verification"
	}
	return "Purchase recorded, awaiting network confirmation"
}
