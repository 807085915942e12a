package models

import (
	"time"
)

// Fraud rule types
const (
	RuleTypeVelocityCheck   = "VELOCITY_CHECK"
	RuleTypeAmountThreshold = "AMOUNT_THRESHOLD"
	RuleTypeDailyLimit      = "DAILY_LIMIT"
)

// Fraud rule actions. The action caps how far a rule's verdict can
// escalate: BLOCK fully, REVIEW to HIGH, ALERT to MEDIUM.
const (
	RuleActionBlock  = "BLOCK"
	RuleActionReview = "REVIEW"
	RuleActionAlert  = "ALERT"
)

// FraudRule is an administratively managed rule evaluated against every
// candidate transaction. RuleConfig carries type-specific parameters;
// rules run in descending Priority order.
type FraudRule struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	RuleName   string    `gorm:"uniqueIndex;not null;size:100" json:"rule_name"`
	RuleType   string    `gorm:"not null;size:50;index" json:"rule_type"`
	RuleConfig JSON      `gorm:"type:jsonb;not null" json:"rule_config"`
	IsActive   bool      `gorm:"not null;default:true;index" json:"is_active"`
	Priority   int       `gorm:"not null;default:0;index" json:"priority"`
	Action     string    `gorm:"not null;size:20;default:'BLOCK'" json:"action"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
