// Package transaction orchestrates money movement. Every entry point
// follows the same shape: reserve the idempotency key, validate, score
// the fraud risk, move balances through the wallet primitives, record
// the double-entry audit trail, then settle the idempotency record.
// Balance mutations that cannot complete are compensated before the
// error is returned.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"digiwallet/internal/config"
	"digiwallet/internal/events"
	"digiwallet/internal/metrics"
	"digiwallet/internal/models"
	"digiwallet/internal/repositories"
	"digiwallet/internal/services/fraud"
	"digiwallet/internal/services/idempotency"
	"digiwallet/internal/services/ledger"
	"digiwallet/internal/services/wallet"
	"digiwallet/internal/utils/money"
)

// Service executes and reads transactions.
type Service interface {
	Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error)
	Deposit(ctx context.Context, req DepositRequest) (*models.Transaction, error)
	Withdraw(ctx context.Context, req WithdrawalRequest) (*models.Transaction, error)

	GetTransactionByRef(ctx context.Context, ref string) (*models.Transaction, error)
	GetWalletTransactions(ctx context.Context, walletNumber string, limit, offset int) ([]*models.Transaction, int64, error)
}

type service struct {
	wallets      wallet.Service
	ledger       ledger.Service
	guard        idempotency.Guard
	fraud        fraud.Service
	transactions repositories.TransactionRepository
	publisher    events.Publisher
	cfg          config.Config
}

// NewService creates the transaction orchestrator.
func NewService(
	wallets wallet.Service,
	ledgerSvc ledger.Service,
	guard idempotency.Guard,
	fraudSvc fraud.Service,
	transactions repositories.TransactionRepository,
	publisher events.Publisher,
	cfg config.Config,
) Service {
	if wallets == nil || ledgerSvc == nil || guard == nil || fraudSvc == nil || transactions == nil {
		panic("all transaction service dependencies are required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{
		wallets:      wallets,
		ledger:       ledgerSvc,
		guard:        guard,
		fraud:        fraudSvc,
		transactions: transactions,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// reserveKey claims the idempotency key. On a replay it looks up the
// original outcome so the caller can be pointed at the existing
// transaction instead of a bare conflict.
func (s *service) reserveKey(ctx context.Context, key string) error {
	err := s.guard.CheckAndReserve(ctx, key)
	if err == nil {
		return nil
	}
	if errors.Is(err, idempotency.ErrDuplicateRequest) {
		metrics.IdempotencyConflictsTotal.Inc()
		ref, lookupErr := s.guard.Lookup(ctx, key)
		if lookupErr != nil {
			log.Printf("transaction: idempotency lookup failed for duplicate key: %v", lookupErr)
		}
		if ref == "" {
			// The redis record can still say "processing" (or have
			// expired) after the first request finished; the unique
			// idempotency_key column is ground truth for the outcome.
			if txn, dbErr := s.transactions.GetByIdempotencyKey(key); dbErr == nil {
				ref = txn.TransactionRef
			}
		}
		return &DuplicateRequestError{TransactionRef: ref}
	}
	return err
}

func (s *service) Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency key is required", ErrInvalidTransaction)
	}
	// Duplicate detection comes first: a replay must surface as a
	// duplicate even when the retried body is malformed.
	if err := s.reserveKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}
	if err := validateTransfer(req); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}

	source, err := s.wallets.GetWallet(ctx, req.SourceWalletNumber)
	if err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}
	destination, err := s.wallets.GetWallet(ctx, req.DestinationWalletNumber)
	if err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}
	if source.Currency != req.Currency || destination.Currency != req.Currency {
		return nil, s.abort(ctx, req.IdempotencyKey, nil,
			fmt.Errorf("%w: currency mismatch", ErrInvalidTransaction))
	}

	fee := money.Fee(req.Amount, s.cfg.TransferFeeRate)
	total := money.Add(req.Amount, fee)

	if err := s.fraud.Check(ctx, source, total, models.TransactionTypeTransfer); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}
	if source.AvailableBalance < total {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, wallet.ErrInsufficientFunds)
	}

	txn := &models.Transaction{
		TransactionRef:      GenerateTransactionRef(),
		IdempotencyKey:      req.IdempotencyKey,
		Type:                models.TransactionTypeTransfer,
		Status:              models.TransactionStatusProcessing,
		Amount:              req.Amount,
		Currency:            req.Currency,
		Fee:                 fee,
		SourceWalletID:      &source.ID,
		DestinationWalletID: &destination.ID,
		Description:         req.Description,
	}
	if err := s.transactions.Create(txn); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil,
			fmt.Errorf("failed to create transaction: %w", err))
	}

	// Two-stage movement: hold the full amount first, then settle the
	// hold and credit the destination. Each later failure unwinds the
	// stages already applied.
	if err := s.wallets.Reserve(ctx, source.ID, total); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}
	if err := s.wallets.SettleReservation(ctx, source.ID, total); err != nil {
		s.compensate(ctx, txn, func() error {
			return s.wallets.ReleaseReservation(ctx, source.ID, total)
		})
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}
	if err := s.wallets.Credit(ctx, destination.ID, req.Amount); err != nil {
		s.compensate(ctx, txn, func() error {
			return s.wallets.Credit(ctx, source.ID, total)
		})
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}

	// Re-read for the balanceAfter snapshots.
	freshSource, err := s.wallets.GetWallet(ctx, req.SourceWalletNumber)
	if err != nil {
		return nil, s.abortSettled(ctx, req.IdempotencyKey, txn, source, destination, req.Amount, total, err)
	}
	freshDestination, err := s.wallets.GetWallet(ctx, req.DestinationWalletNumber)
	if err != nil {
		return nil, s.abortSettled(ctx, req.IdempotencyKey, txn, source, destination, req.Amount, total, err)
	}
	if err := s.ledger.RecordTransferEntries(ctx, txn, freshSource, freshDestination); err != nil {
		return nil, s.abortSettled(ctx, req.IdempotencyKey, txn, source, destination, req.Amount, total, err)
	}

	return s.complete(ctx, txn)
}

func (s *service) Deposit(ctx context.Context, req DepositRequest) (*models.Transaction, error) {
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency key is required", ErrInvalidTransaction)
	}
	if err := s.reserveKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}
	if err := validateDeposit(req); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}

	w, err := s.wallets.GetWallet(ctx, req.WalletNumber)
	if err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}
	if w.Currency != req.Currency {
		return nil, s.abort(ctx, req.IdempotencyKey, nil,
			fmt.Errorf("%w: currency mismatch", ErrInvalidTransaction))
	}

	txn := &models.Transaction{
		TransactionRef:      GenerateTransactionRef(),
		IdempotencyKey:      req.IdempotencyKey,
		Type:                models.TransactionTypeDeposit,
		Status:              models.TransactionStatusProcessing,
		Amount:              req.Amount,
		Currency:            req.Currency,
		DestinationWalletID: &w.ID,
		Description:         req.Description,
		Metadata:            models.NewJSON(map[string]interface{}{"payment_method": req.PaymentMethod}),
	}
	if err := s.transactions.Create(txn); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil,
			fmt.Errorf("failed to create transaction: %w", err))
	}

	if err := s.wallets.Credit(ctx, w.ID, req.Amount); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}

	fresh, err := s.wallets.GetWallet(ctx, req.WalletNumber)
	if err != nil {
		s.compensate(ctx, txn, func() error {
			return s.wallets.Debit(ctx, w.ID, req.Amount)
		})
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}
	if err := s.ledger.RecordDepositEntry(ctx, txn, fresh); err != nil {
		s.compensate(ctx, txn, func() error {
			return s.wallets.Debit(ctx, w.ID, req.Amount)
		})
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}

	return s.complete(ctx, txn)
}

func (s *service) Withdraw(ctx context.Context, req WithdrawalRequest) (*models.Transaction, error) {
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency key is required", ErrInvalidTransaction)
	}
	if err := s.reserveKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}
	if err := validateWithdrawal(req); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}

	w, err := s.wallets.GetWallet(ctx, req.WalletNumber)
	if err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, err)
	}
	if w.Currency != req.Currency {
		return nil, s.abort(ctx, req.IdempotencyKey, nil,
			fmt.Errorf("%w: currency mismatch", ErrInvalidTransaction))
	}
	if w.AvailableBalance < req.Amount {
		return nil, s.abort(ctx, req.IdempotencyKey, nil, wallet.ErrInsufficientFunds)
	}

	txn := &models.Transaction{
		TransactionRef: GenerateTransactionRef(),
		IdempotencyKey: req.IdempotencyKey,
		Type:           models.TransactionTypeWithdrawal,
		Status:         models.TransactionStatusProcessing,
		Amount:         req.Amount,
		Currency:       req.Currency,
		SourceWalletID: &w.ID,
		Description:    req.Description,
		Metadata:       models.NewJSON(map[string]interface{}{"destination_account": req.DestinationAccount}),
	}
	if err := s.transactions.Create(txn); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, nil,
			fmt.Errorf("failed to create transaction: %w", err))
	}

	if err := s.wallets.Debit(ctx, w.ID, req.Amount); err != nil {
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}

	fresh, err := s.wallets.GetWallet(ctx, req.WalletNumber)
	if err != nil {
		s.compensate(ctx, txn, func() error {
			return s.wallets.Credit(ctx, w.ID, req.Amount)
		})
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}
	if err := s.ledger.RecordWithdrawalEntry(ctx, txn, fresh); err != nil {
		s.compensate(ctx, txn, func() error {
			return s.wallets.Credit(ctx, w.ID, req.Amount)
		})
		return nil, s.abort(ctx, req.IdempotencyKey, txn, err)
	}

	return s.complete(ctx, txn)
}

func (s *service) GetTransactionByRef(ctx context.Context, ref string) (*models.Transaction, error) {
	txn, err := s.transactions.GetByRef(ref)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

func (s *service) GetWalletTransactions(ctx context.Context, walletNumber string, limit, offset int) ([]*models.Transaction, int64, error) {
	w, err := s.wallets.GetWallet(ctx, walletNumber)
	if err != nil {
		return nil, 0, err
	}
	return s.transactions.GetWalletTransactions(ctx, w.ID, limit, offset)
}

// complete marks the transaction COMPLETED, settles the idempotency
// record and publishes the lifecycle event.
func (s *service) complete(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	now := time.Now()
	txn.Status = models.TransactionStatusCompleted
	txn.CompletedAt = &now
	if err := s.transactions.Update(txn); err != nil {
		return nil, fmt.Errorf("failed to finalize transaction: %w", err)
	}
	if err := s.guard.MarkCompleted(ctx, txn.IdempotencyKey, txn.TransactionRef); err != nil {
		// The money already moved; a retry with the same key will be
		// rejected by the unique idempotency_key column regardless.
		log.Printf("transaction: failed to mark idempotency key completed for %s: %v", txn.TransactionRef, err)
	}

	metrics.TransactionsTotal.WithLabelValues(txn.Type, txn.Status).Inc()
	metrics.TransactionAmount.WithLabelValues(txn.Type).Observe(txn.Amount)
	s.publisher.PublishTransactionEvent(lifecycleEvent(txn, events.EventTypeCompleted))
	return txn, nil
}

// abort is the shared failure exit. It releases the idempotency key so a
// retry is possible, marks the transaction FAILED when a row exists, and
// returns the original cause.
func (s *service) abort(ctx context.Context, key string, txn *models.Transaction, cause error) error {
	if txn != nil {
		txn.Status = models.TransactionStatusFailed
		txn.FailureReason = cause.Error()
		if err := s.transactions.Update(txn); err != nil {
			log.Printf("transaction: failed to record failure for %s: %v", txn.TransactionRef, err)
		}
		metrics.TransactionsTotal.WithLabelValues(txn.Type, txn.Status).Inc()
		s.publisher.PublishTransactionEvent(lifecycleEvent(txn, events.EventTypeFailed))
	}
	if err := s.guard.MarkFailed(ctx, key); err != nil {
		log.Printf("transaction: failed to release idempotency key: %v", err)
	}
	return cause
}

// abortSettled unwinds a transfer after both balance movements applied.
func (s *service) abortSettled(ctx context.Context, key string, txn *models.Transaction, source, destination *models.Wallet, amount, total float64, cause error) error {
	s.compensate(ctx, txn, func() error {
		if err := s.wallets.Debit(ctx, destination.ID, amount); err != nil {
			return err
		}
		return s.wallets.Credit(ctx, source.ID, total)
	})
	return s.abort(ctx, key, txn, cause)
}

// compensate runs a balance unwind and logs loudly when it fails: a
// failed compensation leaves real money inconsistent and needs an
// operator.
func (s *service) compensate(ctx context.Context, txn *models.Transaction, undo func() error) {
	if err := undo(); err != nil {
		log.Printf("transaction: COMPENSATION FAILED for %s, manual reconciliation required: %v", txn.TransactionRef, err)
	}
}

func lifecycleEvent(txn *models.Transaction, eventType string) events.TransactionEvent {
	return events.TransactionEvent{
		TransactionID:       txn.ID,
		TransactionRef:      txn.TransactionRef,
		SourceWalletID:      txn.SourceWalletID,
		DestinationWalletID: txn.DestinationWalletID,
		TransactionType:     txn.Type,
		Status:              txn.Status,
		Amount:              txn.Amount,
		Currency:            txn.Currency,
		Timestamp:           time.Now(),
		EventType:           eventType,
	}
}

func validateTransfer(req TransferRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if req.SourceWalletNumber == "" || req.DestinationWalletNumber == "" {
		return fmt.Errorf("%w: source and destination wallets are required", ErrInvalidTransaction)
	}
	if req.SourceWalletNumber == req.DestinationWalletNumber {
		return fmt.Errorf("%w: source and destination must differ", ErrInvalidTransaction)
	}
	if req.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidTransaction)
	}
	return nil
}

func validateDeposit(req DepositRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if req.WalletNumber == "" {
		return fmt.Errorf("%w: wallet number is required", ErrInvalidTransaction)
	}
	if req.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidTransaction)
	}
	return nil
}

func validateWithdrawal(req WithdrawalRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if req.WalletNumber == "" {
		return fmt.Errorf("%w: wallet number is required", ErrInvalidTransaction)
	}
	if req.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidTransaction)
	}
	return nil
}
