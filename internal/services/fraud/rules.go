package fraud

import (
	"context"
	"encoding/json"
	"time"

	"digiwallet/internal/models"
)

// Evaluation is the candidate transaction a rule is scored against.
type Evaluation struct {
	Wallet          *models.Wallet
	Amount          float64
	TransactionKind string
}

// RuleEvaluator scores one rule against a candidate transaction.
// Evaluators that fail are treated as low risk by the caller; a fraud
// check must never block the transaction path with its own errors.
type RuleEvaluator func(ctx context.Context, eval Evaluation, rule *models.FraudRule) (RiskLevel, error)

// Typed per-rule configurations, decoded from the rule's jsonb config.
// Missing or malformed keys fall back to the service-wide defaults.

type velocityConfig struct {
	MaxTransactionsPerHour int `json:"max_transactions_per_hour"`
}

type amountThresholdConfig struct {
	ThresholdAmount float64 `json:"threshold_amount"`
}

type dailyLimitConfig struct {
	DailyLimitAmount float64 `json:"daily_limit_amount"`
}

// decodeConfig unmarshals a rule's key/value config into a typed payload.
// Unknown keys are ignored; decode errors leave the defaults in place.
func decodeConfig(raw models.JSON, out interface{}) {
	if raw == nil {
		return
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, out)
}

// checkVelocity compares the wallet owner's transaction count in the
// trailing hour against the configured ceiling.
func (s *service) checkVelocity(ctx context.Context, eval Evaluation, rule *models.FraudRule) (RiskLevel, error) {
	if !s.cfg.VelocityCheckEnabled {
		return RiskLow, nil
	}

	cfg := velocityConfig{MaxTransactionsPerHour: s.cfg.MaxTransactionsPerHour}
	decodeConfig(rule.RuleConfig, &cfg)
	if cfg.MaxTransactionsPerHour <= 0 {
		cfg.MaxTransactionsPerHour = s.cfg.MaxTransactionsPerHour
	}

	oneHourAgo := time.Now().Add(-time.Hour)
	recent, err := s.transactions.CountUserTransactionsSince(ctx, eval.Wallet.UserID, oneHourAgo)
	if err != nil {
		return RiskLow, err
	}
	return bandFor(float64(recent), float64(cfg.MaxTransactionsPerHour)), nil
}

// checkAmountThreshold compares the candidate amount against a configured
// ceiling.
func (s *service) checkAmountThreshold(ctx context.Context, eval Evaluation, rule *models.FraudRule) (RiskLevel, error) {
	cfg := amountThresholdConfig{ThresholdAmount: s.cfg.SuspiciousAmountThreshold}
	decodeConfig(rule.RuleConfig, &cfg)
	if cfg.ThresholdAmount <= 0 {
		cfg.ThresholdAmount = s.cfg.SuspiciousAmountThreshold
	}
	return bandFor(eval.Amount, cfg.ThresholdAmount), nil
}

// checkDailyLimit compares the owner's outgoing volume today, plus the
// candidate amount, against a configured daily ceiling.
func (s *service) checkDailyLimit(ctx context.Context, eval Evaluation, rule *models.FraudRule) (RiskLevel, error) {
	cfg := dailyLimitConfig{}
	decodeConfig(rule.RuleConfig, &cfg)
	if cfg.DailyLimitAmount <= 0 {
		return RiskLow, nil
	}

	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	spent, err := s.transactions.SumUserDebitsSince(ctx, eval.Wallet.UserID, startOfDay)
	if err != nil {
		return RiskLow, err
	}
	return bandFor(spent+eval.Amount, cfg.DailyLimitAmount), nil
}
