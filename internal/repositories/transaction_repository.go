package repositories

import (
	"context"
	"time"

	"digiwallet/internal/models"
)

// TransactionRepository provides durable access to transaction rows and
// the aggregate queries the fraud evaluator needs.
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	Update(tx *models.Transaction) error
	GetByRef(ref string) (*models.Transaction, error)
	GetByIdempotencyKey(key string) (*models.Transaction, error)

	// GetWalletTransactions returns transactions touching the wallet as
	// source or destination, newest first, with the total row count.
	GetWalletTransactions(ctx context.Context, walletID uint, limit, offset int) ([]*models.Transaction, int64, error)

	// CountUserTransactionsSince counts transactions originating from any
	// of the user's wallets since the given time.
	CountUserTransactionsSince(ctx context.Context, userID uint, since time.Time) (int64, error)

	// SumUserDebitsSince sums amount+fee over the user's outgoing
	// transactions since the given time.
	SumUserDebitsSince(ctx context.Context, userID uint, since time.Time) (float64, error)
}
