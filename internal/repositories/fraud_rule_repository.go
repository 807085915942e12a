package repositories

import (
	"context"
	"fmt"

	"digiwallet/internal/models"

	"gorm.io/gorm"
)

// FraudRuleRepository provides read access to the rule set from the
// transaction path and write access for administrative tooling.
type FraudRuleRepository interface {
	Create(rule *models.FraudRule) error
	Update(rule *models.FraudRule) error
	GetByName(name string) (*models.FraudRule, error)

	// GetActiveRules returns active rules ordered by descending priority.
	GetActiveRules(ctx context.Context) ([]*models.FraudRule, error)
}

type fraudRuleRepository struct {
	db *gorm.DB
}

func NewFraudRuleRepository(db *gorm.DB) FraudRuleRepository {
	return &fraudRuleRepository{db: db}
}

func (r *fraudRuleRepository) Create(rule *models.FraudRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create fraud rule: %w", err)
	}
	return nil
}

func (r *fraudRuleRepository) Update(rule *models.FraudRule) error {
	if err := r.db.Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update fraud rule: %w", err)
	}
	return nil
}

func (r *fraudRuleRepository) GetByName(name string) (*models.FraudRule, error) {
	var rule models.FraudRule
	if err := r.db.Where("rule_name = ?", name).First(&rule).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrFraudRuleNotFound
		}
		return nil, fmt.Errorf("failed to get fraud rule: %w", err)
	}
	return &rule, nil
}

func (r *fraudRuleRepository) GetActiveRules(ctx context.Context) ([]*models.FraudRule, error) {
	var rules []*models.FraudRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority DESC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active fraud rules: %w", err)
	}
	return rules, nil
}
