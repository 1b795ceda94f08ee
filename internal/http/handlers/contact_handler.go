package handlers

import (
	"procurement/internal/domain"
	applog "procurement/internal/log"
	"procurement/internal/repos"
	"procurement/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	Contacts *repos.ContactRepo
}

type contactRequest struct {
	City      string `json:"city"`
	Street    string `json:"street"`
	House     string `json:"house"`
	Structure string `json:"structure"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone"`
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.Contacts.ListByUser(userFrom(c).ID)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"contacts": contacts})
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, okID := pathID(c)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid contact id")
	}
	contact, err := h.Contacts.ByID(id, userFrom(c).ID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "contact not found")
	}
	return ok(c, fiber.Map{"contact": contact})
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.City == "" || req.Street == "" {
		return fail(c, fiber.StatusBadRequest, "city and street are required")
	}
	phone, okPhone := validate.Phone(req.Phone)
	if !okPhone {
		return fail(c, fiber.StatusBadRequest, "invalid phone")
	}

	contact := &domain.Contact{
		UserID:    userFrom(c).ID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     phone,
	}
	if err := h.Contacts.Create(contact); err != nil {
		applog.Error(c, "contact.create.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not create contact")
	}
	return created(c, fiber.Map{"contact": contact})
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, okID := pathID(c)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid contact id")
	}
	contact, err := h.Contacts.ByID(id, userFrom(c).ID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "contact not found")
	}

	req := contactRequest{
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Structure: contact.Structure,
		Building:  contact.Building,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	phone, okPhone := validate.Phone(req.Phone)
	if !okPhone {
		return fail(c, fiber.StatusBadRequest, "invalid phone")
	}

	contact.City = req.City
	contact.Street = req.Street
	contact.House = req.House
	contact.Structure = req.Structure
	contact.Building = req.Building
	contact.Apartment = req.Apartment
	contact.Phone = phone
	if err := h.Contacts.Update(contact); err != nil {
		return fail(c, fiber.StatusNotFound, "contact not found")
	}
	return ok(c, fiber.Map{"contact": contact})
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, okID := pathID(c)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid contact id")
	}
	if err := h.Contacts.Delete(id, userFrom(c).ID); err != nil {
		return fail(c, fiber.StatusNotFound, "contact not found")
	}
	return ok(c, fiber.Map{"message": "contact deleted"})
}
