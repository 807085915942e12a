package wallet

import (
	"context"
	"testing"

	"digiwallet/internal/models"
	"digiwallet/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) Create(w *models.Wallet) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockWalletRepo) GetByID(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByNumber(number string) (*models.Wallet, error) {
	args := m.Called(number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUserAndCurrency(userID uint, currency string) (*models.Wallet, error) {
	args := m.Called(userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUserID(userID uint) ([]*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) CountByUserID(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepo) Update(w *models.Wallet) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	m.Called(fn)
	return fn(m)
}

func activeWallet(balance, available, pending float64) *models.Wallet {
	return &models.Wallet{
		ID:               1,
		WalletNumber:     "WLT1000",
		UserID:           7,
		Currency:         "USD",
		Balance:          balance,
		AvailableBalance: available,
		PendingBalance:   pending,
		IsActive:         true,
	}
}

func TestCreateWallet(t *testing.T) {
	t.Run("first wallet becomes primary", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetByUserAndCurrency", uint(7), "USD").Return(nil, repositories.ErrWalletNotFound)
		repo.On("CountByUserID", uint(7)).Return(int64(0), nil)
		repo.On("Create", mock.Anything).Return(nil)

		s := NewService(repo)
		w, err := s.CreateWallet(context.Background(), 7, "USD")
		require.NoError(t, err)
		assert.True(t, w.IsPrimary)
		assert.True(t, w.IsActive)
		assert.Equal(t, "USD", w.Currency)
		assert.NotEmpty(t, w.WalletNumber)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate currency rejected", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetByUserAndCurrency", uint(7), "USD").Return(activeWallet(0, 0, 0), nil)

		s := NewService(repo)
		_, err := s.CreateWallet(context.Background(), 7, "USD")
		assert.ErrorIs(t, err, ErrWalletExists)
	})

	t.Run("second wallet not primary", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetByUserAndCurrency", uint(7), "EUR").Return(nil, repositories.ErrWalletNotFound)
		repo.On("CountByUserID", uint(7)).Return(int64(1), nil)
		repo.On("Create", mock.Anything).Return(nil)

		s := NewService(repo)
		w, err := s.CreateWallet(context.Background(), 7, "EUR")
		require.NoError(t, err)
		assert.False(t, w.IsPrimary)
	})
}

func TestCredit(t *testing.T) {
	repo := new(MockWalletRepo)
	w := activeWallet(0, 0, 0)
	repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	repo.On("GetByIDForUpdate", uint(1)).Return(w, nil)
	repo.On("Update", mock.Anything).Return(nil)

	s := NewService(repo)
	require.NoError(t, s.Credit(context.Background(), 1, 100.00))

	assert.Equal(t, 100.00, w.Balance)
	assert.Equal(t, 100.00, w.AvailableBalance)
	assert.Equal(t, 0.00, w.PendingBalance)
}

func TestCreditInvalidAmount(t *testing.T) {
	s := NewService(new(MockWalletRepo))
	assert.ErrorIs(t, s.Credit(context.Background(), 1, 0), ErrInvalidAmount)
	assert.ErrorIs(t, s.Credit(context.Background(), 1, -5), ErrInvalidAmount)
}

func TestDebit(t *testing.T) {
	t.Run("sufficient funds", func(t *testing.T) {
		repo := new(MockWalletRepo)
		w := activeWallet(100, 100, 0)
		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByIDForUpdate", uint(1)).Return(w, nil)
		repo.On("Update", mock.Anything).Return(nil)

		s := NewService(repo)
		require.NoError(t, s.Debit(context.Background(), 1, 40))
		assert.Equal(t, 60.00, w.Balance)
		assert.Equal(t, 60.00, w.AvailableBalance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		repo := new(MockWalletRepo)
		w := activeWallet(10, 10, 0)
		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByIDForUpdate", uint(1)).Return(w, nil)

		s := NewService(repo)
		assert.ErrorIs(t, s.Debit(context.Background(), 1, 40), ErrInsufficientFunds)
		assert.Equal(t, 10.00, w.Balance) // unchanged
	})
}

func TestReserveSettleRelease(t *testing.T) {
	repo := new(MockWalletRepo)
	w := activeWallet(200, 200, 0)
	repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	repo.On("GetByIDForUpdate", uint(1)).Return(w, nil)
	repo.On("Update", mock.Anything).Return(nil)

	s := NewService(repo)

	// hold
	require.NoError(t, s.Reserve(context.Background(), 1, 101))
	assert.Equal(t, 200.00, w.Balance)
	assert.Equal(t, 99.00, w.AvailableBalance)
	assert.Equal(t, 101.00, w.PendingBalance)

	// settle finalizes the spend
	require.NoError(t, s.SettleReservation(context.Background(), 1, 101))
	assert.Equal(t, 99.00, w.Balance)
	assert.Equal(t, 99.00, w.AvailableBalance)
	assert.Equal(t, 0.00, w.PendingBalance)
	assert.Equal(t, w.Balance, w.AvailableBalance+w.PendingBalance)
}

func TestReleaseRestoresHold(t *testing.T) {
	repo := new(MockWalletRepo)
	w := activeWallet(200, 200, 0)
	repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	repo.On("GetByIDForUpdate", uint(1)).Return(w, nil)
	repo.On("Update", mock.Anything).Return(nil)

	s := NewService(repo)
	require.NoError(t, s.Reserve(context.Background(), 1, 50))
	require.NoError(t, s.ReleaseReservation(context.Background(), 1, 50))

	assert.Equal(t, 200.00, w.Balance)
	assert.Equal(t, 200.00, w.AvailableBalance)
	assert.Equal(t, 0.00, w.PendingBalance)
}

func TestReserveInsufficient(t *testing.T) {
	repo := new(MockWalletRepo)
	w := activeWallet(100, 50, 50)
	repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	repo.On("GetByIDForUpdate", uint(1)).Return(w, nil)

	s := NewService(repo)
	assert.ErrorIs(t, s.Reserve(context.Background(), 1, 60), ErrInsufficientFunds)
}

func TestInactiveWallet(t *testing.T) {
	repo := new(MockWalletRepo)
	w := activeWallet(100, 100, 0)
	w.IsActive = false
	repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
	repo.On("GetByIDForUpdate", uint(1)).Return(w, nil)

	s := NewService(repo)
	assert.ErrorIs(t, s.Credit(context.Background(), 1, 10), ErrWalletInactive)
}

func TestGetBalance(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("GetByNumber", "WLT1000").Return(activeWallet(150, 100, 50), nil)

	s := NewService(repo)
	b, err := s.GetBalance(context.Background(), "WLT1000")
	require.NoError(t, err)
	assert.Equal(t, 150.00, b.TotalBalance)
	assert.Equal(t, 100.00, b.AvailableBalance)
	assert.Equal(t, 50.00, b.PendingBalance)
}

func TestGetWalletNotFound(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("GetByNumber", "WLT404").Return(nil, repositories.ErrWalletNotFound)

	s := NewService(repo)
	_, err := s.GetWallet(context.Background(), "WLT404")
	assert.ErrorIs(t, err, ErrWalletNotFound)
}
