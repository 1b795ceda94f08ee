// Package http assembles the fiber application: middleware, routes and
// the JSON error surface.
package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"procurement/internal/config"
	"procurement/internal/http/handlers"
	applog "procurement/internal/log"
)

func NewApp(db *sqlx.DB, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"status": false, "error": fe.Message})
			}
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"status": false, "error": "internal server error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // price lists come by URL, not body

	deps := handlers.NewDeps(db, cfg)

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.Authenticate(deps.Auth))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/healthz")
		},
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")

	// Accounts
	api.Post("/user/register", deps.AuthHandler.Register)
	api.Post("/user/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).
				JSON(fiber.Map{"status": false, "error": "too many attempts, retry later"})
		},
	}), deps.AuthHandler.Login)
	api.Post("/user/logout", handlers.RequireAuth(), deps.AuthHandler.Logout)
	api.Get("/user/profile", handlers.RequireAuth(), deps.AuthHandler.Profile)
	api.Put("/user/profile", handlers.RequireAuth(), deps.AuthHandler.UpdateProfile)

	// Catalog (public read)
	api.Get("/shops", deps.CatalogHandler.Shops)
	api.Get("/shops/:id", deps.CatalogHandler.Shop)
	api.Get("/categories", deps.CatalogHandler.Categories)
	api.Get("/products", deps.CatalogHandler.Products)
	api.Get("/products/:id", deps.CatalogHandler.Product)
	api.Get("/offers", deps.CatalogHandler.Offers)
	api.Get("/offers/:id", deps.CatalogHandler.Offer)

	// Contacts (owner only)
	api.Get("/contacts", handlers.RequireAuth(), deps.ContactHandler.List)
	api.Post("/contacts", handlers.RequireAuth(), deps.ContactHandler.Create)
	api.Get("/contacts/:id", handlers.RequireAuth(), deps.ContactHandler.Get)
	api.Put("/contacts/:id", handlers.RequireAuth(), deps.ContactHandler.Update)
	api.Delete("/contacts/:id", handlers.RequireAuth(), deps.ContactHandler.Delete)

	// Basket & checkout (buyers)
	api.Get("/basket", handlers.RequireBuyer(), deps.BasketHandler.View)
	api.Post("/basket/items", handlers.RequireBuyer(), deps.BasketHandler.Add)
	api.Put("/basket/items/:offer_id", handlers.RequireBuyer(), deps.BasketHandler.Update)
	api.Delete("/basket/items/:offer_id", handlers.RequireBuyer(), deps.BasketHandler.Remove)
	api.Post("/order/confirm", handlers.RequireBuyer(), deps.OrderHandler.Confirm)

	// Order history
	api.Get("/orders", handlers.RequireAuth(), deps.OrderHandler.History)
	api.Get("/orders/:id", handlers.RequireAuth(), deps.OrderHandler.Get)

	// Supplier endpoints
	api.Post("/partner/update", handlers.RequireShop(), deps.PartnerHandler.Update)
	api.Post("/partner/state", handlers.RequireShop(), deps.PartnerHandler.SetState)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"status": false, "error": "not found"})
	})

	return app
}
