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
)

// AccountRepository implements account persistence using GORM.
// Balance mutations run as single atomic UPDATE statements so concurrent
// settlements never read-modify-write a stale balance.
type AccountRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	classifier   *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		classifier:   NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to an entity
func (r *AccountRepository) modelToEntity(m *model.TokenAccount) *entity.TokenAccount {
	return &entity.TokenAccount{
		UserID:         m.UserID,
		Balance:        m.Balance,
		TotalPurchased: m.TotalPurchased,
		TotalSpent:     m.TotalSpent,
		LastPurchaseAt: m.LastPurchaseAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// GetByUserID retrieves the account for a user
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.TokenAccount, error) {
	var accountModel model.TokenAccount
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&accountModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		r.logger.Error("Failed to get token account", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&accountModel), nil
}

// Create inserts a zero-seeded account row. A concurrent insert for the same
// user surfaces as ErrAccountConflict via the unique index on user_id.
func (r *AccountRepository) Create(ctx context.Context, account *entity.TokenAccount) error {
	accountModel := model.TokenAccount{
		UserID:         account.UserID,
		Balance:        account.Balance,
		TotalPurchased: account.TotalPurchased,
		TotalSpent:     account.TotalSpent,
		LastPurchaseAt: account.LastPurchaseAt,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&accountModel)
	if result.Error != nil {
		if r.classifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrAccountConflict
		}
		r.logger.Error("Failed to create token account", map[string]any{
			"user_id": account.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}

// Credit applies a settled purchase to the account with in-database increments
func (r *AccountRepository) Credit(ctx context.Context, userID string, tokenAmount int64, purchasedAt time.Time) error {
	if tokenAmount <= 0 {
		return errs.ErrInvalidTokenAmount
	}

	result := r.db.WithContext(ctx).
		Model(&model.TokenAccount{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"balance":          gorm.Expr("balance + ?", tokenAmount),
			"total_purchased":  gorm.Expr("total_purchased + ?", tokenAmount),
			"last_purchase_at": purchasedAt,
			"updated_at":       r.timeProvider.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to credit token account", map[string]any{
			"user_id":      userID,
			"token_amount": tokenAmount,
			"error":        result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}

// Debit removes tokens from the account. The balance guard in the WHERE
// clause rejects overdrafts without a prior read.
func (r *AccountRepository) Debit(ctx context.Context, userID string, tokenAmount int64) error {
	if tokenAmount <= 0 {
		return errs.ErrInvalidTokenAmount
	}

	result := r.db.WithContext(ctx).
		Model(&model.TokenAccount{}).
		Where("user_id = ? AND balance >= ?", userID, tokenAmount).
		Updates(map[string]any{
			"balance":     gorm.Expr("balance - ?", tokenAmount),
			"total_spent": gorm.Expr("total_spent + ?", tokenAmount),
			"updated_at":  r.timeProvider.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to debit token account", map[string]any{
			"user_id":      userID,
			"token_amount": tokenAmount,
			"error":        result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		account, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		return errs.NewInsufficientBalanceError(userID, tokenAmount, account.Balance)
	}

	return nil
}
