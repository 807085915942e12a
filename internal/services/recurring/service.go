// Package recurring runs user-defined payment schedules. A background
// loop periodically picks up due schedules and executes each as a
// regular PAYMENT transaction through the wallet and ledger services.
// One failing schedule never stops the batch.
package recurring

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
	"digiwallet/internal/services/idempotency"
	"digiwallet/internal/services/ledger"
	"digiwallet/internal/services/transaction"
	"digiwallet/internal/services/wallet"
)

// Outcome labels for the scheduled payment counter.
const (
	outcomeCompleted         = "completed"
	outcomeFailed            = "failed"
	outcomeInsufficientFunds = "insufficient_funds"
	outcomeDeactivated       = "deactivated"
)

// Service manages recurring payment schedules and their execution.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.RecurringPayment, error)
	GetUserPayments(ctx context.Context, userID uint) ([]*models.RecurringPayment, error)
	Cancel(ctx context.Context, userID, paymentID uint) error

	// Run blocks, executing due payments on every tick until ctx is
	// cancelled. Meant to be started as a goroutine from main.
	Run(ctx context.Context)
}

type service struct {
	payments     repositories.RecurringPaymentRepository
	walletRepo   repositories.WalletRepository
	wallets      wallet.Service
	ledger       ledger.Service
	guard        idempotency.Guard
	transactions repositories.TransactionRepository
	publisher    events.Publisher
	interval     time.Duration
}

// NewService creates the recurring payment scheduler.
func NewService(
	payments repositories.RecurringPaymentRepository,
	walletRepo repositories.WalletRepository,
	wallets wallet.Service,
	ledgerSvc ledger.Service,
	guard idempotency.Guard,
	transactions repositories.TransactionRepository,
	publisher events.Publisher,
	cfg config.Config,
) Service {
	if payments == nil || walletRepo == nil || wallets == nil || ledgerSvc == nil || guard == nil || transactions == nil {
		panic("all recurring service dependencies are required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	interval := cfg.SchedulerInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return &service{
		payments:     payments,
		walletRepo:   walletRepo,
		wallets:      wallets,
		ledger:       ledgerSvc,
		guard:        guard,
		transactions: transactions,
		publisher:    publisher,
		interval:     interval,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.RecurringPayment, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	w, err := s.wallets.GetWallet(ctx, req.SourceWalletNumber)
	if err != nil {
		return nil, err
	}
	if w.UserID != req.UserID {
		return nil, fmt.Errorf("%w: wallet does not belong to user", ErrInvalidPayment)
	}
	if w.Currency != req.Currency {
		return nil, fmt.Errorf("%w: currency mismatch", ErrInvalidPayment)
	}

	start := req.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	p := &models.RecurringPayment{
		UserID:             req.UserID,
		SourceWalletID:     w.ID,
		DestinationAccount: req.DestinationAccount,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Frequency:          req.Frequency,
		NextRunDate:        start,
		EndDate:            req.EndDate,
		Status:             models.RecurringStatusPending,
		MaxExecutions:      req.MaxExecutions,
		Description:        req.Description,
		IsActive:           true,
	}
	if err := s.payments.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create recurring payment: %w", err)
	}
	return p, nil
}

func (s *service) GetUserPayments(ctx context.Context, userID uint) ([]*models.RecurringPayment, error) {
	return s.payments.GetByUserID(userID)
}

// Cancel deactivates a schedule. Payments are never deleted so the
// execution history keeps its anchor row.
func (s *service) Cancel(ctx context.Context, userID, paymentID uint) error {
	p, err := s.payments.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecurringPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if p.UserID != userID {
		return ErrPaymentNotFound
	}

	p.IsActive = false
	p.Status = models.RecurringStatusCancelled
	if err := s.payments.Update(p); err != nil {
		return fmt.Errorf("failed to cancel recurring payment: %w", err)
	}
	return nil
}

func (s *service) Run(ctx context.Context) {
	log.Printf("recurring: scheduler started, interval %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("recurring: scheduler stopped")
			return
		case <-ticker.C:
			s.processDuePayments(ctx)
		}
	}
}

// processDuePayments executes every due schedule. Failures are contained
// per payment.
func (s *service) processDuePayments(ctx context.Context) {
	metrics.SchedulerRunsTotal.Inc()

	due, err := s.payments.FindDue(ctx, models.RecurringStatusPending, time.Now())
	if err != nil {
		log.Printf("recurring: failed to load due payments: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	log.Printf("recurring: processing %d due payments", len(due))

	for _, p := range due {
		if err := s.executePayment(ctx, p); err != nil {
			log.Printf("recurring: payment %d failed: %v", p.ID, err)
		}
	}
}

func (s *service) executePayment(ctx context.Context, p *models.RecurringPayment) error {
	w, err := s.walletRepo.GetByID(p.SourceWalletID)
	if err != nil {
		return fmt.Errorf("failed to load source wallet: %w", err)
	}

	// Funds are checked before the exhaustion check: a schedule that is
	// both broke and exhausted surfaces as FAILED so the owner sees why
	// the last expected run never happened.
	if w.AvailableBalance < p.Amount {
		p.Status = models.RecurringStatusFailed
		if err := s.payments.Update(p); err != nil {
			log.Printf("recurring: failed to persist FAILED status for payment %d: %v", p.ID, err)
		}
		metrics.ScheduledPaymentsTotal.WithLabelValues(outcomeInsufficientFunds).Inc()
		return wallet.ErrInsufficientFunds
	}

	if s.expired(p) {
		p.IsActive = false
		if err := s.payments.Update(p); err != nil {
			return fmt.Errorf("failed to deactivate payment: %w", err)
		}
		metrics.ScheduledPaymentsTotal.WithLabelValues(outcomeDeactivated).Inc()
		return nil
	}

	// Fresh key per run: the guard protects against double execution by
	// a second scheduler instance in the same tick, not across runs.
	key := fmt.Sprintf("RECURRING-%d-%d", p.ID, time.Now().UnixMilli())
	if err := s.guard.CheckAndReserve(ctx, key); err != nil {
		if errors.Is(err, idempotency.ErrDuplicateRequest) {
			return nil
		}
		return err
	}

	txn := &models.Transaction{
		TransactionRef: transaction.GenerateTransactionRef(),
		IdempotencyKey: key,
		Type:           models.TransactionTypePayment,
		Status:         models.TransactionStatusProcessing,
		Amount:         p.Amount,
		Currency:       p.Currency,
		SourceWalletID: &p.SourceWalletID,
		Description:    p.Description,
		Metadata: models.NewJSON(map[string]interface{}{
			"recurring_payment_id": p.ID,
			"destination_account":  p.DestinationAccount,
		}),
	}
	if err := s.transactions.Create(txn); err != nil {
		s.releaseKey(ctx, key)
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}

	if err := s.wallets.Debit(ctx, p.SourceWalletID, p.Amount); err != nil {
		s.failTransaction(ctx, txn, key, err)
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			p.Status = models.RecurringStatusFailed
			if uerr := s.payments.Update(p); uerr != nil {
				log.Printf("recurring: failed to persist FAILED status for payment %d: %v", p.ID, uerr)
			}
			metrics.ScheduledPaymentsTotal.WithLabelValues(outcomeInsufficientFunds).Inc()
		} else {
			metrics.ScheduledPaymentsTotal.WithLabelValues(outcomeFailed).Inc()
		}
		return err
	}

	w, err = s.walletRepo.GetByID(p.SourceWalletID)
	if err == nil {
		err = s.ledger.RecordWithdrawalEntry(ctx, txn, w)
	}
	if err != nil {
		// Money moved; record the failure but do not unwind a completed
		// debit for a missing audit row. The transaction row still ties
		// the movement together.
		log.Printf("recurring: ledger entry failed for %s: %v", txn.TransactionRef, err)
	}

	now := time.Now()
	txn.Status = models.TransactionStatusCompleted
	txn.CompletedAt = &now
	if err := s.transactions.Update(txn); err != nil {
		log.Printf("recurring: failed to finalize transaction %s: %v", txn.TransactionRef, err)
	}
	if err := s.guard.MarkCompleted(ctx, key, txn.TransactionRef); err != nil {
		log.Printf("recurring: failed to mark idempotency key completed: %v", err)
	}

	p.ExecutionCount++
	p.NextRunDate = advance(p.NextRunDate, p.Frequency)
	if s.expired(p) {
		p.IsActive = false
	}
	if err := s.payments.Update(p); err != nil {
		return fmt.Errorf("failed to advance payment schedule: %w", err)
	}

	metrics.ScheduledPaymentsTotal.WithLabelValues(outcomeCompleted).Inc()
	metrics.TransactionsTotal.WithLabelValues(txn.Type, txn.Status).Inc()

	s.publisher.PublishNotificationEvent(events.NotificationEvent{
		Recipient:        fmt.Sprintf("user:%d", p.UserID),
		NotificationType: "RECURRING_PAYMENT_EXECUTED",
		Subject:          "Scheduled payment executed",
		Message:          fmt.Sprintf("Your scheduled payment of %.2f %s to %s was executed.", p.Amount, p.Currency, p.DestinationAccount),
		TemplateData: map[string]interface{}{
			"transaction_ref": txn.TransactionRef,
			"next_run_date":   p.NextRunDate,
		},
		Timestamp: now,
	})
	return nil
}

func (s *service) failTransaction(ctx context.Context, txn *models.Transaction, key string, cause error) {
	txn.Status = models.TransactionStatusFailed
	txn.FailureReason = cause.Error()
	if err := s.transactions.Update(txn); err != nil {
		log.Printf("recurring: failed to record failure for %s: %v", txn.TransactionRef, err)
	}
	s.releaseKey(ctx, key)
}

func (s *service) releaseKey(ctx context.Context, key string) {
	if err := s.guard.MarkFailed(ctx, key); err != nil {
		log.Printf("recurring: failed to release idempotency key: %v", err)
	}
}

// expired reports whether the schedule has run its course.
func (s *service) expired(p *models.RecurringPayment) bool {
	if p.MaxExecutions != nil && p.ExecutionCount >= *p.MaxExecutions {
		return true
	}
	if p.EndDate != nil && time.Now().After(*p.EndDate) {
		return true
	}
	return false
}

// advance moves a run date forward by one frequency step. AddDate is
// calendar-aware: Jan 31 monthly advances into early March the way the
// Gregorian calendar rolls over, and Feb 29 yearly lands on Mar 1 in
// non-leap years.
func advance(from time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case models.FrequencyYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 0, 1)
	}
}

func validateCreate(req CreateRequest) error {
	if req.UserID == 0 {
		return fmt.Errorf("%w: user is required", ErrInvalidPayment)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if req.SourceWalletNumber == "" {
		return fmt.Errorf("%w: source wallet is required", ErrInvalidPayment)
	}
	if req.DestinationAccount == "" {
		return fmt.Errorf("%w: destination account is required", ErrInvalidPayment)
	}
	switch req.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
	default:
		return fmt.Errorf("%w: unsupported frequency %q", ErrInvalidPayment, req.Frequency)
	}
	return nil
}
