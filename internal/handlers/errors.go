package handlers

import (
	"errors"

	"digiwallet/internal/services/fraud"
	"digiwallet/internal/services/idempotency"
	"digiwallet/internal/services/recurring"
	"digiwallet/internal/services/transaction"
	"digiwallet/internal/services/wallet"
	"digiwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses. The mapping is
// the user-visible contract: duplicates conflict, bad input is a client
// error, business refusals are unprocessable, unknown failures stay
// opaque.
func respondError(c *fiber.Ctx, err error) error {
	var dup *transaction.DuplicateRequestError
	if errors.As(err, &dup) {
		body := fiber.Map{"error": dup.Error()}
		if dup.TransactionRef != "" {
			body["transaction_ref"] = dup.TransactionRef
		}
		return utils.Conflict(c, body)
	}

	switch {
	case errors.Is(err, idempotency.ErrDuplicateRequest),
		errors.Is(err, wallet.ErrWalletExists):
		return utils.Conflict(c, fiber.Map{"error": err.Error()})

	case errors.Is(err, transaction.ErrInvalidTransaction),
		errors.Is(err, recurring.ErrInvalidPayment),
		errors.Is(err, wallet.ErrInvalidAmount):
		return utils.BadRequest(c, err.Error())

	case errors.Is(err, wallet.ErrInsufficientFunds),
		errors.Is(err, wallet.ErrWalletInactive),
		errors.Is(err, fraud.ErrFraudDetected):
		return utils.UnprocessableEntity(c, err.Error())

	case errors.Is(err, wallet.ErrWalletNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, recurring.ErrPaymentNotFound):
		return utils.NotFound(c, err.Error())

	default:
		return utils.InternalError(c, "internal server error")
	}
}
