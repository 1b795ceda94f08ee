package handlers

import (
	"strings"

	"procurement/internal/domain"
	applog "procurement/internal/log"
	"procurement/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Authenticate resolves the bearer token to a user and stashes it in the
// request context. Requests without a valid token pass through anonymous;
// the Require* gates decide what that means per route.
func Authenticate(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(header[len("Bearer "):])
			if u, err := auth.CurrentUser(token); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
				c.Locals("token", token)
			}
		}
		return c.Next()
	}
}

func userFrom(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userFrom(c) == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

func RequireBuyer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := userFrom(c)
		if u == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !u.IsBuyer() {
			applog.Security(c, "access.denied.buyer", nil)
			return fail(c, fiber.StatusForbidden, "buyers only")
		}
		return c.Next()
	}
}

func RequireShop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := userFrom(c)
		if u == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !u.IsShop() {
			applog.Security(c, "access.denied.shop", nil)
			return fail(c, fiber.StatusForbidden, "shops only")
		}
		return c.Next()
	}
}
