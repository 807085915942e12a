package wallet

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"digiwallet/internal/models"
	"digiwallet/internal/repositories"
	"digiwallet/internal/utils/money"
)

type service struct {
	repo repositories.WalletRepository
}

// NewService creates a new wallet service.
func NewService(repo repositories.WalletRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// GenerateWalletNumber produces a unique wallet number.
func GenerateWalletNumber() string {
	return fmt.Sprintf("WLT%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

func (s *service) CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error) {
	if _, err := s.repo.GetByUserAndCurrency(userID, currency); err == nil {
		return nil, ErrWalletExists
	} else if err != repositories.ErrWalletNotFound {
		return nil, fmt.Errorf("failed to check existing wallet: %w", err)
	}

	count, err := s.repo.CountByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count wallets: %w", err)
	}

	wallet := &models.Wallet{
		WalletNumber: GenerateWalletNumber(),
		UserID:       userID,
		Currency:     currency,
		IsActive:     true,
		IsPrimary:    count == 0, // first wallet is primary
	}
	if err := s.repo.Create(wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return wallet, nil
}

func (s *service) GetWallet(ctx context.Context, walletNumber string) (*models.Wallet, error) {
	wallet, err := s.repo.GetByNumber(walletNumber)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}

func (s *service) GetUserWallets(ctx context.Context, userID uint) ([]*models.Wallet, error) {
	return s.repo.GetByUserID(userID)
}

func (s *service) GetBalance(ctx context.Context, walletNumber string) (*Balance, error) {
	wallet, err := s.GetWallet(ctx, walletNumber)
	if err != nil {
		return nil, err
	}
	return &Balance{
		Currency:         wallet.Currency,
		TotalBalance:     wallet.Balance,
		AvailableBalance: wallet.AvailableBalance,
		PendingBalance:   wallet.PendingBalance,
	}, nil
}

// Credit adds the amount to both the settled and the available balance.
// A negative wallet is never produced by Credit.
func (s *service) Credit(ctx context.Context, walletID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(walletID, func(w *models.Wallet) error {
		w.Balance = money.Add(w.Balance, amount)
		w.AvailableBalance = money.Add(w.AvailableBalance, amount)
		return nil
	})
}

// Debit removes the amount from both the settled and the available
// balance. Callers are expected to pre-check the available balance; the
// store still refuses to drive it negative.
func (s *service) Debit(ctx context.Context, walletID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(walletID, func(w *models.Wallet) error {
		if w.AvailableBalance < amount {
			return ErrInsufficientFunds
		}
		w.Balance = money.Sub(w.Balance, amount)
		w.AvailableBalance = money.Sub(w.AvailableBalance, amount)
		return nil
	})
}

// Reserve places a hold: available -> pending.
func (s *service) Reserve(ctx context.Context, walletID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(walletID, func(w *models.Wallet) error {
		if w.AvailableBalance < amount {
			return ErrInsufficientFunds
		}
		w.AvailableBalance = money.Sub(w.AvailableBalance, amount)
		w.PendingBalance = money.Add(w.PendingBalance, amount)
		return nil
	})
}

// SettleReservation finalizes a held amount as spent. It removes the hold
// from pending and the funds from the settled balance; the available
// balance was already reduced by Reserve.
func (s *service) SettleReservation(ctx context.Context, walletID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(walletID, func(w *models.Wallet) error {
		w.Balance = money.Sub(w.Balance, amount)
		w.PendingBalance = money.Sub(w.PendingBalance, amount)
		return nil
	})
}

// ReleaseReservation cancels a hold without spending it: pending ->
// available. Used by failure compensation so a failed transfer cannot
// leave the pending balance inflated.
func (s *service) ReleaseReservation(ctx context.Context, walletID uint, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(walletID, func(w *models.Wallet) error {
		w.PendingBalance = money.Sub(w.PendingBalance, amount)
		w.AvailableBalance = money.Add(w.AvailableBalance, amount)
		return nil
	})
}

// mutate applies fn to the wallet row under a row lock in its own
// database transaction.
func (s *service) mutate(walletID uint, fn func(*models.Wallet) error) error {
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		w, err := tx.GetByIDForUpdate(walletID)
		if err != nil {
			if err == repositories.ErrWalletNotFound {
				return ErrWalletNotFound
			}
			return err
		}
		if !w.IsActive {
			return ErrWalletInactive
		}
		if err := fn(w); err != nil {
			return err
		}
		return tx.Update(w)
	})
	return err
}
