package repositories

import "digiwallet/internal/models"

// WalletRepository provides durable access to wallet rows. Mutating
// callers are expected to run inside ExecuteInTransaction and load the
// row with GetByIDForUpdate so concurrent balance changes on the same
// wallet serialize at the database.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByIDForUpdate(id uint) (*models.Wallet, error)
	GetByNumber(number string) (*models.Wallet, error)
	GetByUserAndCurrency(userID uint, currency string) (*models.Wallet, error)
	GetByUserID(userID uint) ([]*models.Wallet, error)
	CountByUserID(userID uint) (int64, error)
	Update(wallet *models.Wallet) error
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
