package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propstake/token-ledger/internal/domain/entity"
	errs "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository implements ledger persistence using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// entityToModel converts a ledger entity to its database model
func (r *TransactionRepository) entityToModel(txn *entity.TokenTransaction) model.TokenTransaction {
	return model.TokenTransaction{
		ID:               txn.ID,
		UserID:           txn.UserID,
		Type:             string(txn.Type),
		TokenAmount:      txn.TokenAmount,
		AmountCents:      txn.AmountCents,
		PaymentMethodKey: txn.PaymentMethodKey,
		PaymentReference: txn.PaymentReference,
		Status:           string(txn.Status),
		Description:      txn.Description,
		CreatedAt:        txn.CreatedAt,
		CompletedAt:      txn.CompletedAt,
	}
}

// modelToEntity converts a database model to a ledger entity
func (r *TransactionRepository) modelToEntity(m *model.TokenTransaction) *entity.TokenTransaction {
	return &entity.TokenTransaction{
		ID:               m.ID,
		UserID:           m.UserID,
		Type:             entity.TransactionType(m.Type),
		TokenAmount:      m.TokenAmount,
		AmountCents:      m.AmountCents,
		PaymentMethodKey: m.PaymentMethodKey,
		PaymentReference: m.PaymentReference,
		Status:           entity.TransactionStatus(m.Status),
		Description:      m.Description,
		CreatedAt:        m.CreatedAt,
		CompletedAt:      m.CompletedAt,
	}
}

// Create appends a new ledger entry and fills in the generated ID
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.TokenTransaction) error {
	txnModel := r.entityToModel(txn)

	result := r.db.WithContext(ctx).Create(&txnModel)
	if result.Error != nil {
		r.logger.Error("Failed to create token transaction", map[string]any{
			"user_id": txn.UserID,
			"type":    string(txn.Type),
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	txn.ID = txnModel.ID
	return nil
}

// GetByID retrieves a ledger entry by its identifier
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.TokenTransaction, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate retrieves a ledger entry with a row lock. Callers must be
// inside a unit of work for the lock to matter.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.TokenTransaction, error) {
	return r.getByID(ctx, id, true)
}

func (r *TransactionRepository) getByID(ctx context.Context, id uint64, forUpdate bool) (*entity.TokenTransaction, error) {
	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var txnModel model.TokenTransaction
	result := query.Where("id = ?", id).First(&txnModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get token transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&txnModel), nil
}

// UpdateStatus persists a status transition already validated by the entity
func (r *TransactionRepository) UpdateStatus(ctx context.Context, txn *entity.TokenTransaction) error {
	result := r.db.WithContext(ctx).
		Model(&model.TokenTransaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]any{
			"status":       string(txn.Status),
			"completed_at": txn.CompletedAt,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update transaction status", map[string]any{
			"transaction_id": txn.ID,
			"status":         string(txn.Status),
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	return nil
}

// ListForUser returns the most recent ledger entries for a user
func (r *TransactionRepository) ListForUser(ctx context.Context, userID string, limit int) ([]entity.TokenTransaction, error) {
	var txnModels []model.TokenTransaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txnModels)

	if result.Error != nil {
		r.logger.Error("Failed to list token transactions", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	txns := make([]entity.TokenTransaction, 0, len(txnModels))
	for i := range txnModels {
		txns = append(txns, *r.modelToEntity(&txnModels[i]))
	}
	return txns, nil
}

// ListPendingDeferred returns pending purchases on deferred-settlement rails
// that have aged past the confirmation delay, oldest first
func (r *TransactionRepository) ListPendingDeferred(ctx context.Context, olderThan time.Time, limit int) ([]entity.TokenTransaction, error) {
	var txnModels []model.TokenTransaction
	result := r.db.WithContext(ctx).
		Joins("JOIN payment_methods ON payment_methods.key = token_transactions.payment_method_key").
		Where("token_transactions.status = ?", string(entity.StatusPending)).
		Where("token_transactions.type = ?", string(entity.TypePurchase)).
		Where("payment_methods.category = ?", string(entity.CategoryCrypto)).
		Where("token_transactions.created_at < ?", olderThan).
		Order("token_transactions.created_at ASC").
		Limit(limit).
		Find(&txnModels)

	if result.Error != nil {
		r.logger.Error("Failed to list pending deferred transactions", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	txns := make([]entity.TokenTransaction, 0, len(txnModels))
	for i := range txnModels {
		txns = append(txns, *r.modelToEntity(&txnModels[i]))
	}
	return txns, nil
}
