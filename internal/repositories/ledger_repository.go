package repositories

import (
	"context"
	"fmt"

	"digiwallet/internal/models"

	"gorm.io/gorm"
)

// LedgerRepository appends and reads immutable ledger entries. There is
// deliberately no update or delete.
type LedgerRepository interface {
	CreateEntries(entries []*models.LedgerEntry) error
	GetWalletEntries(ctx context.Context, walletID uint, limit, offset int) ([]*models.LedgerEntry, error)
	GetTransactionEntries(ctx context.Context, transactionID uint) ([]*models.LedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// CreateEntries appends all entries in a single insert so a transaction's
// legs land all-or-nothing.
func (r *ledgerRepository) CreateEntries(entries []*models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := r.db.Create(entries).Error; err != nil {
		return fmt.Errorf("failed to create ledger entries: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetWalletEntries(ctx context.Context, walletID uint, limit, offset int) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet ledger: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepository) GetTransactionEntries(ctx context.Context, transactionID uint) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction ledger: %w", err)
	}
	return entries, nil
}
