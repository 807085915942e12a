package handlers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"digiwallet/internal/services/fraud"
	"digiwallet/internal/services/recurring"
	"digiwallet/internal/services/transaction"
	"digiwallet/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate with ref", &transaction.DuplicateRequestError{TransactionRef: "TXN-1"}, fiber.StatusConflict},
		{"duplicate processing", &transaction.DuplicateRequestError{}, fiber.StatusConflict},
		{"wallet exists", wallet.ErrWalletExists, fiber.StatusConflict},
		{"invalid transaction", transaction.ErrInvalidTransaction, fiber.StatusBadRequest},
		{"invalid payment", recurring.ErrInvalidPayment, fiber.StatusBadRequest},
		{"invalid amount", wallet.ErrInvalidAmount, fiber.StatusBadRequest},
		{"insufficient funds", wallet.ErrInsufficientFunds, fiber.StatusUnprocessableEntity},
		{"inactive wallet", wallet.ErrWalletInactive, fiber.StatusUnprocessableEntity},
		{"fraud detected", fraud.ErrFraudDetected, fiber.StatusUnprocessableEntity},
		{"wallet not found", wallet.ErrWalletNotFound, fiber.StatusNotFound},
		{"transaction not found", transaction.ErrTransactionNotFound, fiber.StatusNotFound},
		{"payment not found", recurring.ErrPaymentNotFound, fiber.StatusNotFound},
		{"unknown failure", errors.New("pq: connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return respondError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestWrappedErrorsKeepTheirStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, errors.Join(errors.New("context"), wallet.ErrInsufficientFunds))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
