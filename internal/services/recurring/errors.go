package recurring

import "errors"

// Service errors
var (
	ErrPaymentNotFound = errors.New("recurring payment not found")
	ErrInvalidPayment  = errors.New("invalid recurring payment request")
)
