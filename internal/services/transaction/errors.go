package transaction

import (
	"errors"
	"fmt"

	"digiwallet/internal/services/idempotency"
)

// Service errors
var (
	ErrInvalidTransaction  = errors.New("invalid transaction request")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// DuplicateRequestError reports a replayed idempotency key. When the
// original request already completed, TransactionRef names its result so
// the caller can fetch it instead of retrying.
type DuplicateRequestError struct {
	TransactionRef string
}

func (e *DuplicateRequestError) Error() string {
	if e.TransactionRef != "" {
		return fmt.Sprintf("duplicate request, original transaction: %s", e.TransactionRef)
	}
	return "duplicate request is still processing"
}

func (e *DuplicateRequestError) Unwrap() error {
	return idempotency.ErrDuplicateRequest
}
