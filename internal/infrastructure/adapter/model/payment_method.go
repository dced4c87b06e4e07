package model

import "time"

// PaymentMethod represents the database model for payment rails
type PaymentMethod struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	Key            string    `gorm:"uniqueIndex;not null;size:100"`
	DisplayName    string    `gorm:"not null;size:255"`
	Category       string    `gorm:"not null;size:50"`
	FeePercent     string    `gorm:"not null;size:10"` // 2-decimal string, 0-100
	MinAmountCents int64     `gorm:"not null"`
	MaxAmountCents int64     `gorm:"not null"`
	Active         bool      `gorm:"not null;default:true"`
	Priority       int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for PaymentMethod
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
