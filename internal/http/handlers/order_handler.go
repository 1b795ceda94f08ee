package handlers

import (
	"errors"

	applog "procurement/internal/log"
	"procurement/internal/repos"
	"procurement/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type confirmRequest struct {
	ContactID int64 `json:"contact_id"`
}

func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.ContactID <= 0 {
		return fail(c, fiber.StatusBadRequest, "contact_id is required")
	}

	orderID, total, err := h.Orders.Confirm(userFrom(c), req.ContactID)
	var stockErr *repos.StockError
	switch {
	case err == services.ErrContactNotFound:
		return fail(c, fiber.StatusNotFound, err.Error())
	case err == repos.ErrEmptyBasket:
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &stockErr):
		return fail(c, fiber.StatusBadRequest, stockErr.Error())
	case err != nil:
		applog.Error(c, "order.confirm.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not place order")
	}

	applog.Audit(c, "order.confirm", map[string]any{"order_id": orderID, "total": total.String()})
	return ok(c, fiber.Map{
		"message":     "order placed",
		"order_id":    orderID,
		"total_price": total,
	})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.History(userFrom(c).ID)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"orders": orders})
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, okID := pathID(c)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid order id")
	}
	order, items, err := h.Orders.Get(id, userFrom(c).ID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "order not found")
	}
	return ok(c, fiber.Map{"order": order, "items": items})
}
