package repositories

import "errors"

// Repository errors
var (
	ErrWalletNotFound           = errors.New("wallet not found")
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrRecurringPaymentNotFound = errors.New("recurring payment not found")
	ErrFraudRuleNotFound        = errors.New("fraud rule not found")
)
