package transaction

// TransferRequest moves money between two internal wallets.
type TransferRequest struct {
	SourceWalletNumber      string  `json:"source_wallet_number"`
	DestinationWalletNumber string  `json:"destination_wallet_number"`
	Amount                  float64 `json:"amount"`
	Currency                string  `json:"currency"`
	Description             string  `json:"description"`
	IdempotencyKey          string  `json:"idempotency_key"`
}

// DepositRequest credits a wallet from an external funding source.
type DepositRequest struct {
	WalletNumber   string  `json:"wallet_number"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	PaymentMethod  string  `json:"payment_method"`
	Description    string  `json:"description"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// WithdrawalRequest debits a wallet toward an external account.
type WithdrawalRequest struct {
	WalletNumber       string  `json:"wallet_number"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	DestinationAccount string  `json:"destination_account"`
	Description        string  `json:"description"`
	IdempotencyKey     string  `json:"idempotency_key"`
}
