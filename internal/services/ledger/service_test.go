package ledger

import (
	"context"
	"testing"

	"digiwallet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntries(entries []*models.LedgerEntry) error {
	args := m.Called(entries)
	return args.Error(0)
}

func (m *MockLedgerRepo) GetWalletEntries(ctx context.Context, walletID uint, limit, offset int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepo) GetTransactionEntries(ctx context.Context, transactionID uint) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func TestRecordTransferEntries(t *testing.T) {
	repo := new(MockLedgerRepo)

	var captured []*models.LedgerEntry
	repo.On("CreateEntries", mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(0).([]*models.LedgerEntry)
	}).Return(nil)

	txn := &models.Transaction{
		ID:             10,
		TransactionRef: "TXN-20260831-ABCD1234",
		Amount:         100.00,
		Fee:            1.00,
		Currency:       "USD",
	}
	source := &models.Wallet{ID: 1, WalletNumber: "WLT-A", Balance: 99.00}
	dest := &models.Wallet{ID: 2, WalletNumber: "WLT-B", Balance: 100.00}

	s := NewService(repo)
	require.NoError(t, s.RecordTransferEntries(context.Background(), txn, source, dest))
	require.Len(t, captured, 2)

	debit, credit := captured[0], captured[1]
	assert.Equal(t, models.EntryTypeDebit, debit.EntryType)
	assert.Equal(t, 101.00, debit.Amount) // amount + fee
	assert.Equal(t, uint(1), debit.WalletID)
	assert.Equal(t, 99.00, debit.BalanceAfter)

	assert.Equal(t, models.EntryTypeCredit, credit.EntryType)
	assert.Equal(t, 100.00, credit.Amount)
	assert.Equal(t, uint(2), credit.WalletID)
	assert.Equal(t, 100.00, credit.BalanceAfter)

	// debit minus credit nets to the retained fee
	assert.Equal(t, txn.Fee, debit.Amount-credit.Amount)

	for _, e := range captured {
		assert.Equal(t, txn.TransactionRef, e.Reference)
		assert.Equal(t, txn.ID, e.TransactionID)
		assert.Equal(t, "USD", e.Currency)
	}
}

func TestRecordDepositEntry(t *testing.T) {
	repo := new(MockLedgerRepo)

	var captured []*models.LedgerEntry
	repo.On("CreateEntries", mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(0).([]*models.LedgerEntry)
	}).Return(nil)

	txn := &models.Transaction{ID: 11, TransactionRef: "TXN-20260831-DEP", Amount: 100.00, Currency: "USD"}
	wallet := &models.Wallet{ID: 3, WalletNumber: "WLT-C", Balance: 100.00}

	s := NewService(repo)
	require.NoError(t, s.RecordDepositEntry(context.Background(), txn, wallet))
	require.Len(t, captured, 1)
	assert.Equal(t, models.EntryTypeCredit, captured[0].EntryType)
	assert.Equal(t, 100.00, captured[0].Amount)
	assert.Equal(t, 100.00, captured[0].BalanceAfter)
}

func TestGetTransactionLedger(t *testing.T) {
	repo := new(MockLedgerRepo)
	legs := []*models.LedgerEntry{
		{TransactionID: 10, EntryType: models.EntryTypeDebit, Amount: 101.00},
		{TransactionID: 10, EntryType: models.EntryTypeCredit, Amount: 100.00},
	}
	repo.On("GetTransactionEntries", mock.Anything, uint(10)).Return(legs, nil)

	s := NewService(repo)
	got, err := s.GetTransactionLedger(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, legs, got)
}

func TestRecordWithdrawalEntry(t *testing.T) {
	repo := new(MockLedgerRepo)

	var captured []*models.LedgerEntry
	repo.On("CreateEntries", mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(0).([]*models.LedgerEntry)
	}).Return(nil)

	txn := &models.Transaction{ID: 12, TransactionRef: "TXN-20260831-WDR", Amount: 25.00, Currency: "USD"}
	wallet := &models.Wallet{ID: 4, WalletNumber: "WLT-D", Balance: 75.00}

	s := NewService(repo)
	require.NoError(t, s.RecordWithdrawalEntry(context.Background(), txn, wallet))
	require.Len(t, captured, 1)
	assert.Equal(t, models.EntryTypeDebit, captured[0].EntryType)
	assert.Equal(t, 25.00, captured[0].Amount)
}
