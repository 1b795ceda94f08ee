package handlers

import (
	"database/sql"
	"errors"
	"strconv"

	applog "procurement/internal/log"
	"procurement/internal/repos"
	"procurement/internal/services"

	"github.com/gofiber/fiber/v2"
)

type BasketHandler struct {
	Basket *services.BasketService
}

func (h *BasketHandler) View(c *fiber.Ctx) error {
	view, err := h.Basket.View(userFrom(c).ID)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"basket": view})
}

type basketItemRequest struct {
	OfferID  int64 `json:"offer_id"`
	Quantity int   `json:"quantity"`
}

func basketError(c *fiber.Ctx, err error) error {
	var stockErr *repos.StockError
	switch {
	case errors.As(err, &stockErr):
		return fail(c, fiber.StatusBadRequest, stockErr.Error())
	case err == services.ErrBadQuantity:
		return fail(c, fiber.StatusBadRequest, err.Error())
	case err == sql.ErrNoRows:
		return fail(c, fiber.StatusNotFound, "offer not found in basket or catalog")
	default:
		applog.Error(c, "basket.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "basket operation failed")
	}
}

func (h *BasketHandler) Add(c *fiber.Ctx) error {
	var req basketItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.OfferID <= 0 {
		return fail(c, fiber.StatusBadRequest, "offer_id is required")
	}
	if req.Quantity < 1 {
		return fail(c, fiber.StatusBadRequest, "quantity must be positive")
	}
	if err := h.Basket.Add(userFrom(c).ID, req.OfferID, req.Quantity); err != nil {
		return basketError(c, err)
	}
	applog.Audit(c, "basket.add", map[string]any{"offer_id": req.OfferID, "qty": req.Quantity})
	return created(c, fiber.Map{"message": "item added"})
}

func (h *BasketHandler) Update(c *fiber.Ctx) error {
	offerID, err := strconv.ParseInt(c.Params("offer_id"), 10, 64)
	if err != nil || offerID <= 0 {
		return fail(c, fiber.StatusBadRequest, "invalid offer id")
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity < 1 {
		return fail(c, fiber.StatusBadRequest, "quantity must be positive")
	}
	if err := h.Basket.Update(userFrom(c).ID, offerID, req.Quantity); err != nil {
		return basketError(c, err)
	}
	applog.Audit(c, "basket.update", map[string]any{"offer_id": offerID, "qty": req.Quantity})
	return ok(c, fiber.Map{"message": "item updated"})
}

func (h *BasketHandler) Remove(c *fiber.Ctx) error {
	offerID, err := strconv.ParseInt(c.Params("offer_id"), 10, 64)
	if err != nil || offerID <= 0 {
		return fail(c, fiber.StatusBadRequest, "invalid offer id")
	}
	if err := h.Basket.Remove(userFrom(c).ID, offerID); err != nil {
		return basketError(c, err)
	}
	applog.Audit(c, "basket.remove", map[string]any{"offer_id": offerID})
	return ok(c, fiber.Map{"message": "item removed"})
}
