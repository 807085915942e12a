// Package ledger records the double-entry audit trail. Entries are
// append-only; each carries a balanceAfter snapshot so the balance
// history can be reconciled without replaying mutations.
package ledger

import (
	"context"
	"fmt"

	"digiwallet/internal/models"
	"digiwallet/internal/repositories"
	"digiwallet/internal/utils/money"
)

// Service records and reads ledger entries.
type Service interface {
	RecordTransferEntries(ctx context.Context, txn *models.Transaction, source, destination *models.Wallet) error
	RecordDepositEntry(ctx context.Context, txn *models.Transaction, wallet *models.Wallet) error
	RecordWithdrawalEntry(ctx context.Context, txn *models.Transaction, wallet *models.Wallet) error
	GetWalletLedger(ctx context.Context, walletID uint, limit, offset int) ([]*models.LedgerEntry, error)
	GetTransactionLedger(ctx context.Context, transactionID uint) ([]*models.LedgerEntry, error)
}

type service struct {
	repo repositories.LedgerRepository
}

// NewService creates a new ledger service.
func NewService(repo repositories.LedgerRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// RecordTransferEntries writes the two legs of a transfer in one insert:
// a debit on the source for amount+fee and a credit on the destination
// for amount. The wallets must already reflect the final balances so the
// balanceAfter snapshots are accurate.
func (s *service) RecordTransferEntries(ctx context.Context, txn *models.Transaction, source, destination *models.Wallet) error {
	debit := &models.LedgerEntry{
		TransactionID: txn.ID,
		WalletID:      source.ID,
		EntryType:     models.EntryTypeDebit,
		Amount:        money.Add(txn.Amount, txn.Fee),
		Currency:      txn.Currency,
		BalanceAfter:  source.Balance,
		Reference:     txn.TransactionRef,
		Description:   "Transfer to " + destination.WalletNumber,
	}
	credit := &models.LedgerEntry{
		TransactionID: txn.ID,
		WalletID:      destination.ID,
		EntryType:     models.EntryTypeCredit,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		BalanceAfter:  destination.Balance,
		Reference:     txn.TransactionRef,
		Description:   "Transfer from " + source.WalletNumber,
	}
	if err := s.repo.CreateEntries([]*models.LedgerEntry{debit, credit}); err != nil {
		return fmt.Errorf("failed to record transfer entries: %w", err)
	}
	return nil
}

func (s *service) RecordDepositEntry(ctx context.Context, txn *models.Transaction, wallet *models.Wallet) error {
	entry := &models.LedgerEntry{
		TransactionID: txn.ID,
		WalletID:      wallet.ID,
		EntryType:     models.EntryTypeCredit,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		BalanceAfter:  wallet.Balance,
		Reference:     txn.TransactionRef,
		Description:   "Deposit",
	}
	if err := s.repo.CreateEntries([]*models.LedgerEntry{entry}); err != nil {
		return fmt.Errorf("failed to record deposit entry: %w", err)
	}
	return nil
}

func (s *service) RecordWithdrawalEntry(ctx context.Context, txn *models.Transaction, wallet *models.Wallet) error {
	entry := &models.LedgerEntry{
		TransactionID: txn.ID,
		WalletID:      wallet.ID,
		EntryType:     models.EntryTypeDebit,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		BalanceAfter:  wallet.Balance,
		Reference:     txn.TransactionRef,
		Description:   "Withdrawal",
	}
	if err := s.repo.CreateEntries([]*models.LedgerEntry{entry}); err != nil {
		return fmt.Errorf("failed to record withdrawal entry: %w", err)
	}
	return nil
}

func (s *service) GetWalletLedger(ctx context.Context, walletID uint, limit, offset int) ([]*models.LedgerEntry, error) {
	return s.repo.GetWalletEntries(ctx, walletID, limit, offset)
}

// GetTransactionLedger returns the legs recorded for one transaction, in
// insertion order, for audit reconciliation.
func (s *service) GetTransactionLedger(ctx context.Context, transactionID uint) ([]*models.LedgerEntry, error) {
	return s.repo.GetTransactionEntries(ctx, transactionID)
}
