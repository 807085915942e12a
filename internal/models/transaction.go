package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeDeposit    = "DEPOSIT"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeTransfer   = "TRANSFER"
	TransactionTypePayment    = "PAYMENT"
	TransactionTypeRefund     = "REFUND"
	TransactionTypeFee        = "FEE"
	TransactionTypeReversal   = "REVERSAL"
)

// Transaction statuses. PENDING and PROCESSING are transient; the rest
// are terminal.
const (
	TransactionStatusPending    = "PENDING"
	TransactionStatusProcessing = "PROCESSING"
	TransactionStatusCompleted  = "COMPLETED"
	TransactionStatusFailed     = "FAILED"
	TransactionStatusReversed   = "REVERSED"
	TransactionStatusCancelled  = "CANCELLED"
)

// Transaction is a single money-movement request. TransactionRef is the
// system-generated human-readable reference; IdempotencyKey is supplied by
// the caller and maps to at most one Transaction, ever.
type Transaction struct {
	ID                  uint       `gorm:"primarykey" json:"id"`
	TransactionRef      string     `gorm:"uniqueIndex;not null;size:50" json:"transaction_ref"`
	IdempotencyKey      string     `gorm:"uniqueIndex;not null;size:100" json:"idempotency_key"`
	Type                string     `gorm:"not null;size:20;index" json:"type"`
	Status              string     `gorm:"not null;size:20;index;default:'PENDING'" json:"status"`
	Amount              float64    `gorm:"not null" json:"amount"`
	Currency            string     `gorm:"not null;size:3" json:"currency"`
	Fee                 float64    `gorm:"not null;default:0" json:"fee"`
	SourceWalletID      *uint      `gorm:"index" json:"source_wallet_id,omitempty"`
	DestinationWalletID *uint      `gorm:"index" json:"destination_wallet_id,omitempty"`
	Description         string     `gorm:"size:500" json:"description"`
	Metadata            JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	FailureReason       string     `gorm:"size:500" json:"failure_reason,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CreatedAt           time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
