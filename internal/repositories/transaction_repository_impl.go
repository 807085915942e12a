package repositories

import (
	"context"
	"fmt"
	"time"

	"digiwallet/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) Update(tx *models.Transaction) error {
	if err := r.db.Save(tx).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByRef(ref string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("transaction_ref = ?", ref).First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) GetByIdempotencyKey(key string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("idempotency_key = ?", key).First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) GetWalletTransactions(ctx context.Context, walletID uint, limit, offset int) ([]*models.Transaction, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("source_wallet_id = ? OR destination_wallet_id = ?", walletID, walletID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	var txs []*models.Transaction
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get wallet transactions: %w", err)
	}
	return txs, total, nil
}

func (r *transactionRepository) CountUserTransactionsSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("source_wallet_id IN (?)",
			r.db.Model(&models.Wallet{}).Select("id").Where("user_id = ?", userID)).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count user transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) SumUserDebitsSince(ctx context.Context, userID uint, since time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("source_wallet_id IN (?)",
			r.db.Model(&models.Wallet{}).Select("id").Where("user_id = ?", userID)).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(amount + fee), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum user debits: %w", err)
	}
	return total, nil
}
