package model

import "time"

// TokenTransaction represents the database model for ledger entries
type TokenTransaction struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	UserID           string    `gorm:"not null;index;size:64"`
	Type             string    `gorm:"not null;size:20"`
	TokenAmount      int64     `gorm:"not null"`
	AmountCents      int64     `gorm:"not null"`
	PaymentMethodKey string    `gorm:"size:100;index"` // empty for spend/refund
	PaymentReference string    `gorm:"not null;size:255"`
	Status           string    `gorm:"not null;size:20;index"`
	Description      string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"not null;index"`
	CompletedAt      *time.Time
}

// TableName specifies the table name for TokenTransaction
func (TokenTransaction) TableName() string {
	return "token_transactions"
}
