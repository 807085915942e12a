package models

import (
	"time"
)

// Ledger entry types
const (
	EntryTypeDebit  = "DEBIT"
	EntryTypeCredit = "CREDIT"
)

// LedgerEntry is an immutable debit/credit record tied to one transaction
// and one wallet. Entries are append-only; they are the audit trail of
// balance history and are never edited or deleted. BalanceAfter snapshots
// the wallet balance at write time for reconciliation.
type LedgerEntry struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TransactionID uint      `gorm:"not null;index" json:"transaction_id"`
	WalletID      uint      `gorm:"not null;index" json:"wallet_id"`
	EntryType     string    `gorm:"not null;size:10" json:"entry_type"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"not null;size:3" json:"currency"`
	BalanceAfter  float64   `gorm:"not null" json:"balance_after"`
	Reference     string    `gorm:"not null;size:100" json:"reference"`
	Description   string    `gorm:"size:500" json:"description"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}
