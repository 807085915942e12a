package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrWalletExists      = errors.New("wallet already exists for this currency")
	ErrWalletInactive    = errors.New("wallet is not active")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient available balance")
)
