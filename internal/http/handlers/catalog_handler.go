package handlers

import (
	"strconv"

	"procurement/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func queryID(c *fiber.Ctx, key string) int64 {
	id, _ := strconv.ParseInt(c.Query(key), 10, 64)
	return id
}

func (h *CatalogHandler) Shops(c *fiber.Ctx) error {
	shops, err := h.Catalog.ListShops()
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"shops": shops})
}

func (h *CatalogHandler) Shop(c *fiber.Ctx) error {
	id, okID := pathID(c)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid shop id")
	}
	shop, err := h.Catalog.GetShop(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "shop not found")
	}
	return ok(c, fiber.Map{"shop": shop})
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"categories": cats})
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts(queryID(c, "category_id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"products": products})
}

func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, okID := pathID(c)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	return ok(c, fiber.Map{"product": p})
}

func (h *CatalogHandler) Offers(c *fiber.Ctx) error {
	offers, err := h.Catalog.ListOffers(queryID(c, "shop_id"), queryID(c, "category_id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"offers": offers})
}

func (h *CatalogHandler) Offer(c *fiber.Ctx) error {
	id, okID := pathID(c)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid offer id")
	}
	o, err := h.Catalog.GetOffer(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "offer not found")
	}
	return ok(c, fiber.Map{"offer": o})
}
