package models

import (
	"time"
)

// Wallet is a per-user, per-currency balance container. Balances split
// three ways: Balance is the settled total, AvailableBalance is spendable
// now and PendingBalance holds in-flight reservations. At rest between
// operations Balance == AvailableBalance + PendingBalance.
type Wallet struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	WalletNumber     string    `gorm:"uniqueIndex;not null;size:20" json:"wallet_number"`
	UserID           uint      `gorm:"not null;index;uniqueIndex:uk_user_currency" json:"user_id"`
	Currency         string    `gorm:"not null;size:3;uniqueIndex:uk_user_currency" json:"currency"`
	Balance          float64   `gorm:"not null;default:0" json:"balance"`
	AvailableBalance float64   `gorm:"not null;default:0" json:"available_balance"`
	PendingBalance   float64   `gorm:"not null;default:0" json:"pending_balance"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	IsPrimary        bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
