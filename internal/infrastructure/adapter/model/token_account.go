package model

import "time"

// TokenAccount represents the database model for per-user balance rows.
// The unique index on user_id is what makes lazy creation race-safe.
type TokenAccount struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	UserID         string    `gorm:"uniqueIndex;not null;size:64"`
	Balance        int64     `gorm:"not null;default:0"`
	TotalPurchased int64     `gorm:"not null;default:0"`
	TotalSpent     int64     `gorm:"not null;default:0"`
	LastPurchaseAt *time.Time
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for TokenAccount
func (TokenAccount) TableName() string {
	return "user_token_accounts"
}
