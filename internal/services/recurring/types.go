package recurring

import "time"

// CreateRequest defines a new recurring payment schedule.
type CreateRequest struct {
	UserID             uint       `json:"user_id"`
	SourceWalletNumber string     `json:"source_wallet_number"`
	DestinationAccount string     `json:"destination_account"`
	Amount             float64    `json:"amount"`
	Currency           string     `json:"currency"`
	Frequency          string     `json:"frequency"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	MaxExecutions      *int       `json:"max_executions,omitempty"`
	Description        string     `json:"description"`
}
