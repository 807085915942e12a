package handlers

import (
	"digiwallet/internal/services/recurring"
	"digiwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RecurringHandler struct {
	service recurring.Service
}

func NewRecurringHandler(service recurring.Service) *RecurringHandler {
	return &RecurringHandler{service: service}
}

func (h *RecurringHandler) Create(c *fiber.Ctx) error {
	var req recurring.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	p, err := h.service.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, fiber.Map{"recurring_payment": p})
}

func (h *RecurringHandler) GetUserPayments(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	payments, err := h.service.GetUserPayments(c.Context(), uint(userID))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"recurring_payments": payments})
}

func (h *RecurringHandler) Cancel(c *fiber.Ctx) error {
	paymentID, err := c.ParamsInt("id")
	if err != nil || paymentID <= 0 {
		return utils.BadRequest(c, "invalid payment id")
	}
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return utils.BadRequest(c, "user_id is required")
	}

	if err := h.service.Cancel(c.Context(), uint(userID), uint(paymentID)); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "recurring payment cancelled"})
}
