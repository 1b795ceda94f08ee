package handlers

import (
	"io"

	applog "procurement/internal/log"
	"procurement/internal/repos"
	"procurement/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PartnerHandler struct {
	Partner *services.PartnerService
}

type partnerUpdateRequest struct {
	URL string `json:"url"`
}

// Update ingests a price list for the caller's shop, either from a URL in
// the JSON body or from a multipart file upload.
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	userID := userFrom(c).ID

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "could not read uploaded file")
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "could not read uploaded file")
		}
		return h.finish(c, "file", func() (repos.SyncResult, error) {
			return h.Partner.UpdateFromBytes(userID, raw)
		})
	}

	var req partnerUpdateRequest
	if err := c.BodyParser(&req); err == nil && req.URL != "" {
		return h.finish(c, "url", func() (repos.SyncResult, error) {
			return h.Partner.UpdateFromSource(userID, req.URL)
		})
	}

	return fail(c, fiber.StatusBadRequest, "no import source provided")
}

func (h *PartnerHandler) finish(c *fiber.Ctx, source string, run func() (repos.SyncResult, error)) error {
	res, err := run()
	if err == services.ErrNoShop {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		applog.Error(c, "partner.update.fail", err, map[string]any{"source": source})
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Audit(c, "partner.update", map[string]any{
		"shop": res.ShopName, "categories": res.Categories, "goods": res.Imported,
	})
	return ok(c, fiber.Map{
		"message":     "price list updated",
		"shop":        res.ShopName,
		"categories":  res.Categories,
		"goods":       res.Imported,
		"goods_total": res.Attempted,
	})
}

type stateRequest struct {
	State *bool `json:"state"`
}

func (h *PartnerHandler) SetState(c *fiber.Ctx) error {
	var req stateRequest
	if err := c.BodyParser(&req); err != nil || req.State == nil {
		return fail(c, fiber.StatusBadRequest, "state is required")
	}
	if err := h.Partner.SetState(userFrom(c).ID, *req.State); err != nil {
		if err == services.ErrNoShop {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		applog.Error(c, "partner.state.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not update shop state")
	}
	applog.Audit(c, "partner.state", map[string]any{"state": *req.State})
	return ok(c, fiber.Map{"message": "shop state updated"})
}
