package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "urbankicks/internal/log"
)

// ErrorHandler logs the failure and shows a friendly message without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	if fe, ok := err.(*fiber.Error); ok && fe.Code < 500 {
		code = fe.Code
		msg = fe.Message
	} else {
		applog.Error(c, "server.error", err, nil)
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// OrderLimiter throttles checkout submissions per client.
func OrderLimiter(n int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        n,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|orders"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.orders.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many orders, retry soon"})
		},
	})
}

// Routes mounts every page and API endpoint on app.
func Routes(app *fiber.App, d *Deps) {
	orders := OrderLimiter(10, time.Minute)

	// Pages
	app.Get("/", d.CatalogHandler.Home)
	app.Get("/brand/:brand", d.CatalogHandler.Brand)
	app.Get("/product/:id", d.CatalogHandler.Detail)
	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Post("/orders", orders, d.OrderHandler.Place)

	// API
	api := app.Group("/api/v1")
	api.Get("/brands", d.CatalogHandler.BrandsJSON)
	api.Get("/brands/:brand/products", d.CatalogHandler.BrandProductsJSON)
	api.Get("/products/:id", d.CatalogHandler.ProductJSON)
	api.Get("/cart", d.CartHandler.ViewJSON)
	api.Post("/cart", d.CartHandler.AddJSON)
	api.Delete("/cart/:index", d.CartHandler.RemoveJSON)
	api.Get("/checkout/summary", d.CartHandler.SummaryJSON)
	api.Post("/orders", orders, d.OrderHandler.PlaceJSON)
	api.Get("/admin/orders", RequireAdmin(d.Admin), d.AdminHandler.Orders)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return notFound(c, "Page not found")
	})
}
