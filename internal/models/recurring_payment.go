package models

import (
	"time"
)

// Recurring payment statuses. PENDING means eligible for the next run;
// FAILED means the last run could not execute and an operator or the
// owner must intervene before the schedule resumes.
const (
	RecurringStatusPending   = "PENDING"
	RecurringStatusFailed    = "FAILED"
	RecurringStatusCancelled = "CANCELLED"
)

// Payment frequencies
const (
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
)

// RecurringPayment is a user-defined schedule that periodically
// re-triggers a withdrawal-style transaction. The scheduler advances
// NextRunDate by Frequency after each execution and deactivates the
// payment once MaxExecutions is reached or EndDate passes. Payments are
// never hard-deleted, only deactivated.
type RecurringPayment struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	UserID             uint       `gorm:"not null;index" json:"user_id"`
	SourceWalletID     uint       `gorm:"not null;index" json:"source_wallet_id"`
	DestinationAccount string     `gorm:"not null;size:100" json:"destination_account"`
	Amount             float64    `gorm:"not null" json:"amount"`
	Currency           string     `gorm:"not null;size:3" json:"currency"`
	Frequency          string     `gorm:"not null;size:20" json:"frequency"`
	NextRunDate        time.Time  `gorm:"not null;index" json:"next_run_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	Status             string     `gorm:"not null;size:20;index;default:'PENDING'" json:"status"`
	ExecutionCount     int        `gorm:"not null;default:0" json:"execution_count"`
	MaxExecutions      *int       `json:"max_executions,omitempty"`
	Description        string     `gorm:"size:500" json:"description"`
	IsActive           bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
