package handlers

import (
	"digiwallet/internal/services/ledger"
	"digiwallet/internal/services/transaction"
	"digiwallet/internal/utils"
	"digiwallet/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service       transaction.Service
	ledgerService ledger.Service
}

func NewTransactionHandler(service transaction.Service, ledgerService ledger.Service) *TransactionHandler {
	return &TransactionHandler{service: service, ledgerService: ledgerService}
}

// idempotencyKey prefers the header; the body field is a fallback for
// clients that cannot set headers.
func idempotencyKey(c *fiber.Ctx, bodyKey string) string {
	if key := c.Get("Idempotency-Key"); key != "" {
		return key
	}
	return bodyKey
}

func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	var req transaction.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	req.IdempotencyKey = idempotencyKey(c, req.IdempotencyKey)

	txn, err := h.service.Transfer(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, fiber.Map{"transaction": txn})
}

func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	var req transaction.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	req.IdempotencyKey = idempotencyKey(c, req.IdempotencyKey)

	txn, err := h.service.Deposit(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, fiber.Map{"transaction": txn})
}

func (h *TransactionHandler) Withdraw(c *fiber.Ctx) error {
	var req transaction.WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	req.IdempotencyKey = idempotencyKey(c, req.IdempotencyKey)

	txn, err := h.service.Withdraw(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, fiber.Map{"transaction": txn})
}

func (h *TransactionHandler) GetByRef(c *fiber.Ctx) error {
	txn, err := h.service.GetTransactionByRef(c.Context(), c.Params("ref"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"transaction": txn})
}

// GetLedgerEntries returns the ledger legs recorded for a transaction so
// auditors can reconcile both sides of a movement in one call.
func (h *TransactionHandler) GetLedgerEntries(c *fiber.Ctx) error {
	txn, err := h.service.GetTransactionByRef(c.Context(), c.Params("ref"))
	if err != nil {
		return respondError(c, err)
	}

	entries, err := h.ledgerService.GetTransactionLedger(c.Context(), txn.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"transaction_ref": txn.TransactionRef, "entries": entries})
}

func (h *TransactionHandler) GetWalletTransactions(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	txns, total, err := h.service.GetWalletTransactions(c.Context(), c.Params("number"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	p.Total = total
	return utils.Success(c, pagination.Response(p, txns))
}
