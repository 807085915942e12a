// Package fraud implements rule-based risk scoring for candidate
// transactions. Rules are administratively managed rows; each rule type
// maps to an evaluator through a strategy table, so new rule types only
// add an entry there.
package fraud

import (
	"context"
	"errors"
	"log"

	"digiwallet/internal/config"
	"digiwallet/internal/metrics"
	"digiwallet/internal/models"
	"digiwallet/internal/repositories"
)

// ErrFraudDetected is returned when the assessed risk is HIGH or
// CRITICAL. The transaction must be aborted before any balance mutation.
var ErrFraudDetected = errors.New("transaction blocked by fraud detection")

// Service assesses fraud risk for candidate transactions.
type Service interface {
	// Assess returns the maximum risk level across all active rules.
	Assess(ctx context.Context, wallet *models.Wallet, amount float64, transactionKind string) RiskLevel

	// Check runs Assess and enforces the caller contract: HIGH and
	// CRITICAL abort with ErrFraudDetected, MEDIUM is logged, LOW passes.
	Check(ctx context.Context, wallet *models.Wallet, amount float64, transactionKind string) error
}

type service struct {
	rules        repositories.FraudRuleRepository
	transactions repositories.TransactionRepository
	cfg          config.FraudConfig
	evaluators   map[string]RuleEvaluator
}

// NewService creates a new fraud risk evaluator.
func NewService(rules repositories.FraudRuleRepository, transactions repositories.TransactionRepository, cfg config.FraudConfig) Service {
	if rules == nil {
		panic("rule repo is required")
	}
	if transactions == nil {
		panic("transaction repo is required")
	}
	s := &service{
		rules:        rules,
		transactions: transactions,
		cfg:          cfg,
	}
	s.evaluators = map[string]RuleEvaluator{
		models.RuleTypeVelocityCheck:   s.checkVelocity,
		models.RuleTypeAmountThreshold: s.checkAmountThreshold,
		models.RuleTypeDailyLimit:      s.checkDailyLimit,
	}
	return s
}

func (s *service) Assess(ctx context.Context, wallet *models.Wallet, amount float64, transactionKind string) RiskLevel {
	activeRules, err := s.rules.GetActiveRules(ctx)
	if err != nil {
		// Fail open: a broken rule store must not block money movement.
		log.Printf("fraud: failed to load rules, assuming low risk: %v", err)
		return RiskLow
	}

	eval := Evaluation{Wallet: wallet, Amount: amount, TransactionKind: transactionKind}
	maxRisk := RiskLow

	for _, rule := range activeRules {
		evaluator, ok := s.evaluators[rule.RuleType]
		if !ok {
			continue
		}

		risk, err := evaluator(ctx, eval, rule)
		if err != nil {
			log.Printf("fraud: rule %s evaluation failed, treating as low risk: %v", rule.RuleName, err)
			risk = RiskLow
		}
		risk = applyAction(rule, risk)
		if risk > maxRisk {
			maxRisk = risk
		}
		if maxRisk == RiskCritical {
			break
		}
	}
	return maxRisk
}

// applyAction caps a rule's verdict according to its configured action.
// BLOCK (the default) keeps the full banding; REVIEW flags for manual
// review at most, so it never triggers the critical short-circuit; ALERT
// is observe-only and can never push a transaction into blocking range.
func applyAction(rule *models.FraudRule, risk RiskLevel) RiskLevel {
	switch rule.Action {
	case models.RuleActionAlert:
		if risk > RiskMedium {
			log.Printf("fraud: alert rule %s raised %s, logging only", rule.RuleName, risk)
			risk = RiskMedium
		}
	case models.RuleActionReview:
		if risk > RiskHigh {
			risk = RiskHigh
		}
	case models.RuleActionBlock:
	}
	return risk
}

func (s *service) Check(ctx context.Context, wallet *models.Wallet, amount float64, transactionKind string) error {
	risk := s.Assess(ctx, wallet, amount, transactionKind)
	metrics.FraudChecksTotal.WithLabelValues(risk.String()).Inc()

	switch {
	case risk >= RiskHigh:
		log.Printf("fraud: high risk detected for wallet %s level %s", wallet.WalletNumber, risk)
		return ErrFraudDetected
	case risk == RiskMedium:
		log.Printf("fraud: medium risk detected for wallet %s", wallet.WalletNumber)
	}
	return nil
}
