package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/domain/port/persistence"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern over gorm transactions.
// The ledger write and the account increment of one settlement always ride
// the same database transaction.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction and stores it in the context
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction in the given context
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction in the given context. Rolling back a
// transaction that already finished is treated as a no-op.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// GetAccountRepository returns an account repository bound to the current transaction
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a ledger repository bound to the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the transactional handle, falling back to the
// root connection outside a unit of work
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
