package handlers

import "github.com/gofiber/fiber/v2"

// ok wraps a success payload in the API's status envelope.
func ok(c *fiber.Ctx, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["status"] = true
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["status"] = true
	return c.Status(fiber.StatusCreated).JSON(data)
}

func fail(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"status": false, "error": msg})
}
