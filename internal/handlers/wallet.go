package handlers

import (
	"digiwallet/internal/services/ledger"
	"digiwallet/internal/services/wallet"
	"digiwallet/internal/utils"
	"digiwallet/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
	ledgerService ledger.Service
}

func NewWalletHandler(walletService wallet.Service, ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		ledgerService: ledgerService,
	}
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	var input struct {
		UserID   uint   `json:"user_id"`
		Currency string `json:"currency"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.UserID == 0 || input.Currency == "" {
		return utils.BadRequest(c, "user_id and currency are required")
	}

	w, err := h.walletService.CreateWallet(c.Context(), input.UserID, input.Currency)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	w, err := h.walletService.GetWallet(c.Context(), c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.walletService.GetBalance(c.Context(), c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"balance": balance})
}

func (h *WalletHandler) GetUserWallets(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	wallets, err := h.walletService.GetUserWallets(c.Context(), uint(userID))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"wallets": wallets})
}

func (h *WalletHandler) GetLedger(c *fiber.Ctx) error {
	w, err := h.walletService.GetWallet(c.Context(), c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}

	p := pagination.ParseFromRequest(c)
	entries, err := h.ledgerService.GetWalletLedger(c.Context(), w.ID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"entries": entries})
}
