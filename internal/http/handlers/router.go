package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "posledger/internal/log"
)

// NewApp builds the JSON API over deps.
func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		BodyLimit:             1 << 20,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(helmet.New())

	app.Get("/healthz", d.AdminHandler.Health)

	api := app.Group("/api/v1", d.Serialize())
	api.Get("/products", d.ProductHandler.List)
	api.Post("/products", d.ProductHandler.Add)
	api.Post("/products/:code/restock", d.ProductHandler.Restock)
	api.Get("/availability", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), d.InventoryHandler.Check)
	api.Post("/sales", d.SaleHandler.Create)
	api.Get("/sales", d.SaleHandler.List)
	api.Post("/save", d.AdminHandler.SaveNow)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	return app
}
