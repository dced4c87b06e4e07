package purchase

import (
	"context"
	"fmt"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
)

// Settle is the single atomic completion path for pending purchases. The
// synchronous flow, the deferred settlement worker and the admin back-office
// all converge here, so completion is guarded by a row lock and repeating it
// never credits twice.
func (s *Service) Settle(ctx context.Context, transactionID uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	txnRepo := s.uow.GetTransactionRepository(txCtx)
	txn, err := txnRepo.GetByIDForUpdate(txCtx, transactionID)
	if err != nil {
		return err
	}

	if txn.IsCompleted() {
		// Already settled; retries are a no-op
		s.logger.Debug("Settlement skipped, transaction already completed", map[string]any{
			"transaction_id": transactionID,
		})
		return nil
	}
	if err := txn.TransitionTo(entity.StatusCompleted, s.timeProvider); err != nil {
		return err
	}
	if err := txnRepo.UpdateStatus(txCtx, txn); err != nil {
		return err
	}

	if txn.Type == entity.TypePurchase {
		acctRepo := s.uow.GetAccountRepository(txCtx)
		if err := s.ensureAccount(txCtx, acctRepo, txn.UserID); err != nil {
			return err
		}
		if err := acctRepo.Credit(txCtx, txn.UserID, txn.TokenAmount, *txn.CompletedAt); err != nil {
			return err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed = true

	s.logger.Info("Transaction settled", map[string]any{
		"transaction_id": transactionID,
		"user_id":        txn.UserID,
		"token_amount":   txn.TokenAmount,
	})
	return nil
}

// Resolve applies a back-office decision to a pending transaction.
// Completion routes through Settle so the balance effect stays atomic;
// failed and cancelled are guarded status updates with no balance effect.
func (s *Service) Resolve(ctx context.Context, transactionID uint64, status entity.TransactionStatus) error {
	switch status {
	case entity.StatusCompleted:
		return s.Settle(ctx, transactionID)
	case entity.StatusFailed, entity.StatusCancelled:
		// fall through to the guarded update below
	default:
		return fmt.Errorf("%w: cannot resolve a transaction to %s", errs.ErrInvalidRequest, status)
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	txnRepo := s.uow.GetTransactionRepository(txCtx)
	txn, err := txnRepo.GetByIDForUpdate(txCtx, transactionID)
	if err != nil {
		return err
	}
	if err := txn.TransitionTo(status, s.timeProvider); err != nil {
		return err
	}
	if err := txnRepo.UpdateStatus(txCtx, txn); err != nil {
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	committed = true

	s.logger.Info("Transaction resolved", map[string]any{
		"transaction_id": transactionID,
		"status":         string(status),
	})
	return nil
}
