// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and registers
// every HTTP route.
package routes

import (
	"digiwallet/internal/config"
	"digiwallet/internal/events"
	"digiwallet/internal/handlers"
	"digiwallet/internal/repositories"
	"digiwallet/internal/services/fraud"
	"digiwallet/internal/services/idempotency"
	"digiwallet/internal/services/ledger"
	"digiwallet/internal/services/recurring"
	"digiwallet/internal/services/transaction"
	"digiwallet/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes. It returns the
// recurring payment service so main can run the scheduler loop.
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg config.Config) recurring.Service {
	// Repositories
	walletRepo := repositories.NewWalletRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	fraudRuleRepo := repositories.NewFraudRuleRepository(db)
	recurringRepo := repositories.NewRecurringPaymentRepository(db)

	// Services
	publisher := events.NewRedisPublisher(rdb)
	guard := idempotency.NewGuard(rdb, cfg.IdempotencyTTL)
	walletService := wallet.NewService(walletRepo)
	ledgerService := ledger.NewService(ledgerRepo)
	fraudService := fraud.NewService(fraudRuleRepo, transactionRepo, cfg.Fraud)
	transactionService := transaction.NewService(
		walletService, ledgerService, guard, fraudService, transactionRepo, publisher, cfg,
	)
	recurringService := recurring.NewService(
		recurringRepo, walletRepo, walletService, ledgerService, guard, transactionRepo, publisher, cfg,
	)

	// Handlers
	walletHandler := handlers.NewWalletHandler(walletService, ledgerService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, ledgerService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	healthHandler := handlers.NewHealthHandler(db, rdb)

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	wallets := api.Group("/wallets")
	wallets.Post("/", walletHandler.CreateWallet)
	wallets.Get("/:number", walletHandler.GetWallet)
	wallets.Get("/:number/balance", walletHandler.GetBalance)
	wallets.Get("/:number/ledger", walletHandler.GetLedger)
	wallets.Get("/:number/transactions", transactionHandler.GetWalletTransactions)

	transactions := api.Group("/transactions")
	transactions.Post("/transfer", transactionHandler.Transfer)
	transactions.Post("/deposit", transactionHandler.Deposit)
	transactions.Post("/withdraw", transactionHandler.Withdraw)
	transactions.Get("/:ref", transactionHandler.GetByRef)
	transactions.Get("/:ref/entries", transactionHandler.GetLedgerEntries)

	recurringPayments := api.Group("/recurring-payments")
	recurringPayments.Post("/", recurringHandler.Create)
	recurringPayments.Delete("/:id", recurringHandler.Cancel)

	users := api.Group("/users")
	users.Get("/:id/wallets", walletHandler.GetUserWallets)
	users.Get("/:id/recurring-payments", recurringHandler.GetUserPayments)

	return recurringService
}
