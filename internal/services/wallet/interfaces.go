package wallet

import (
	"context"

	"digiwallet/internal/models"
)

// Service defines the wallet ledger store interface.
type Service interface {
	// Wallet lifecycle
	CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error)
	GetWallet(ctx context.Context, walletNumber string) (*models.Wallet, error)
	GetUserWallets(ctx context.Context, userID uint) ([]*models.Wallet, error)
	GetBalance(ctx context.Context, walletNumber string) (*Balance, error)

	// Balance primitives. Each is atomic with respect to a single wallet
	// row. Credit and Debit move settled and available balance together;
	// Reserve/SettleReservation/ReleaseReservation implement the
	// hold -> spend / hold -> restore cycle.
	Credit(ctx context.Context, walletID uint, amount float64) error
	Debit(ctx context.Context, walletID uint, amount float64) error
	Reserve(ctx context.Context, walletID uint, amount float64) error
	SettleReservation(ctx context.Context, walletID uint, amount float64) error
	ReleaseReservation(ctx context.Context, walletID uint, amount float64) error
}
